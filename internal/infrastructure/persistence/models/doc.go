// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - identity.go: users
//   - crm.go: leads, contacts, deals, activities
//   - inventory.go: categories, products, warehouses, stock_movements
//   - accounting.go: customers, invoices, payments, expenses
//   - hr.go: departments, employees, attendance, leave_requests, payroll
//   - sales.go: quotes, sales_orders and their items, shipments
package models
