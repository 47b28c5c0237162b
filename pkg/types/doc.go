// Package types defines the value types shared by the partition table model,
// its serializer and the host tools: quantities, the tagged numeric cell
// (auto, valid, or invalid text), entries and rows, typed errors, and the
// validation report.
//
// Design goals:
//   - Invalid input never panics and never blocks editing; it is carried as
//     data (Value{State: ValueInvalid}) and reported.
//   - Untouched cells keep their original text so rendering is faithful.
//   - Typed errors with stable categories (invalid number, index, field...).
package types
