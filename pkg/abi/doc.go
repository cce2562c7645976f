// Package abi mirrors the MariaDB plugin header surface as Go types.
//
// Every struct in this package has exactly the memory layout of the C record
// it is named after on LP64 targets, so a pointer handed over by the server
// can be reinterpreted with unsafe.Pointer and a record built in Go can be
// handed back. Field order, widths and signedness follow the headers
// (mysql/plugin.h, mysql/plugin_encryption.h, handler.h, my_base.h) and must
// not be changed by hand.
//
// Function pointer fields are typed as unsafe.Pointer; nil is NULL.
// Opaque host records (THD, MEM_ROOT, Alter_inplace_info, ...) are declared
// as empty structs and only ever used behind pointers.
package abi
