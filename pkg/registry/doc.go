// Package registry provides a generic, type-safe registry system
// for managing output writers and other named factories. It supports
// automatic registration through init() functions.
package registry
