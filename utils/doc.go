// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric and display helpers shared by the player
// packages and the command line tool.
package utils
