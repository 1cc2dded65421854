// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package engine interprets a compiled instr.Program against a raster.Image.
//
// # Execution model
//
// Instructions run strictly in program order. Environment instructions
// (set/del of a modifier) only change the run's Environment; image operations
// read nothing from it except Resize, which receives a snapshot of the
// environment as it is at that moment. Updates that come later in the
// program never affect an earlier Resize.
//
// Within one image operation the frames of an animation are independent:
// they are transformed in parallel on a bounded errgroup and joined before the
// next instruction starts. The image is only updated after every frame has
// succeeded, so a failing instruction leaves the image as the previous
// instruction produced it. Earlier instructions are not rolled back.
//
// Files referenced by an instruction (diff and overlay images, fonts) are
// opened through a Loader each time that instruction executes.
package engine
