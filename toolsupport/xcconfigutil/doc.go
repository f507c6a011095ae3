// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package xcconfigutil provides utilities for Xcode build settings files
// generated by flutter, such as Flutter/Generated.xcconfig.
package xcconfigutil
