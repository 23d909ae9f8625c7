// Package persistence stores dongle configurations in files.
//
// A configuration file is a flat document mapping "protocol" to the protocol
// name and every input key to its channel number. JSON is the primary
// format; files ending in .yaml or .yml hold the same document as YAML.
// Reading is lenient: a document that is not a mapping is rejected with a
// *FileError, while bad individual fields only produce warnings.
package persistence
