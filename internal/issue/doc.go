// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing errors for etstool.
// An ActionableError tells the user what operation failed, which resource
// was involved, and what they can do about it.
package issue
