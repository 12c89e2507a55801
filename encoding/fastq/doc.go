// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fastq recognizes, validates, and normalizes sequencing read files
// across the broad family of real-world FASTQ/FASTA dialects (Illumina,
// 454/Newbler, PacBio, Ion Torrent, Nanopore, Helicos, ABI SOLiD, and QIIME
// derivatives of several of the above), pairs files and within-file orphans
// by read identity, and assembles the result into a stream of canonical
// "spot" records suitable for a column-oriented archive writer.
//
// The package is organized around one file (or file group) per pipeline
// stage:
//
//	defline.go, defline_*.go   classify one header line
//	sequence.go                validate/normalize a sequence string
//	quality.go                 validate/normalize a quality string
//	reader_*.go                pull one (defline, seq, qual) at a time
//	shape.go                   pick a Reader variant for a file
//	pairing.go, orphan.go      match files and orphan reads across files
//	encoding.go                infer the Phred offset and log-odds flag
//	spot.go, nanopore.go       assemble reads into spots and emit them
//
// Ingest, in ingest.go, drives shape detection through spot emission for a
// full dataset.
package fastq
