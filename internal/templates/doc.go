// Package templates scaffolds new marks projects: a config file and a
// sample dataset to render or serve straight away.
package templates
