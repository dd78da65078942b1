// Package pkg holds the libraries that do not depend on testgrunt internals and could be reused by other tools.
package pkg
