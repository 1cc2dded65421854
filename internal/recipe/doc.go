// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package recipe loads named image programs from HCL or YAML files.
//
// A recipe holds either a script attribute in the script language or an
// ordered list of step blocks:
//
//	recipe "thumbnail" {
//	  description = "small preview"
//	  step "preserve-aspect-ratio" { args = [true] }
//	  step "resize" { args = [200, 200] }
//	  step "fliph" {}
//	}
//
//	recipe "quick" {
//	  script = "blur 1; invert"
//	}
//
// Step arguments are numbers, bools or strings. They become the same raw
// tokens the script parser produces, positioned at their HCL source, and go
// through the same coercion. A step may list several argument blocks
// (args = [10, 10, 20, 20] on resize) to run the operation once per block.
// `reset = true` on a modifier step restores its default.
//
// YAML files (.yaml or .yml) carry the same recipes as a list:
//
//	recipes:
//	  - name: thumbnail
//	    steps:
//	      - op: resize
//	        args: [200, 200]
//	      - op: sampling-filter
//	        reset: true
//
// Every recipe is compiled while loading, so a broken file fails early.
package recipe
