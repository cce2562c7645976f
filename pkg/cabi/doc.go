// Package cabi exposes the slot tables of pkg/bridge to the server as C
// functions.
//
// Importing the package (generated registration code does) installs a C
// heap allocator for strings handed to the server and links the exported
// trampolines:
//
//   - mb_handler_* fill the handler_bridge vtable;
//   - mb_hton_* fill the handlerton view;
//   - mb_encryption_* back st_mariadb_encryption, indexed by plugin;
//   - mb_plugin_init and mb_plugin_deinit back the declaration hooks.
//
// The C records are declared in include/mariabridge.h, which the server's
// handler_bridge patch includes as well. Without cgo the package only
// reports that it is disabled.
package cabi

import "github.com/cockroachdb/errors"

var (
	// ErrNoHostBridge is returned when the server does not export the
	// handler_bridge entry points a storage engine needs.
	ErrNoHostBridge = errors.New("server does not provide the handler bridge")

	// ErrDisabled is returned by CheckLayout in builds without cgo.
	ErrDisabled = errors.New("built without cgo")
)
