// Package task provides a periodic runner for background maintenance jobs.
package task
