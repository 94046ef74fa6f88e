// Package global installs a dynamically typed façade over every style under
// a process-wide name. Nothing is registered until the host calls Install
// (or Register) during its own initialisation.
package global
