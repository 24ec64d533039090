// Copyright © 2018 One Concern

// Package storage provides interface to handle backend storage objects.
//
// This package supports the following backends:
//   - S3 (AWS)
//   - local file system, with atomic writes
package storage
