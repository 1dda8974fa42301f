// Package bootstrap makes sure the grumm build system is available before handing a build file to
// the Odin toolchain.
//
// The dependency is either already installed, tracked as a git submodule that only needs to be
// synced or cloned from scratch. Once it is present the build file is compiled and run with the
// resolved install and output paths passed in as defines.
package bootstrap
