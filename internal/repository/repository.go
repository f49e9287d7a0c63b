// Package repository is the persistence gateway of the API.
//
// One repository per table, all sharing a *gorm.DB. Lookups return
// (nil, nil) when the row does not exist so callers decide which error the
// client sees. Driver errors are wrapped with a stack trace and left for
// sqlerr to classify.
package repository
