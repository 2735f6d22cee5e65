// Package file stores legalchunk settings as a TOML file under the
// application home directory.
package file
