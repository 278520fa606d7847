// Package model defines the shared data contracts of the card pipeline:
// template metadata, field definitions, the externally persisted field
// mapping shape, user records, and the CardData value set renderers consume.
// The concrete types live in internal/model and are aliased here so every
// stage (extract, naming, resolve, render) agrees on one vocabulary without
// import cycles. Struct tags on FieldMapping and UserData are the persisted
// wire format and must not change without a data migration.
package model
