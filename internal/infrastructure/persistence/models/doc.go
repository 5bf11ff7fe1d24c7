// Package models contains GORM persistence models and their conversions
// to and from domain entities. Domain packages never depend on this
// package; repositories translate at the boundary.
package models
