// Package registerpatron implements registering a Standard or Staff patron.
package registerpatron
