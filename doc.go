// Package main provides the entry point for the WarrantyDesk portal.
// It initializes and runs a web server using the Fiber framework that serves
// role-specific dashboards for platform operators, dealers and customers.
// Warranty data lives in the backend API; the portal keeps its own settings
// and the dealer account status mirror in a local database via gorm.
package main
