// Package vcs computes per-line modification markers for files in a git
// working tree, relative to the HEAD commit.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrNotTracked reports a file that is not part of HEAD.
var ErrNotTracked = errors.New("vcs: file not tracked")

// LineChange is the kind of modification recorded for a line.
type LineChange uint8

const (
	// Added marks a line that does not exist in HEAD.
	Added LineChange = iota + 1
	// RemovedAbove marks a line preceded by deleted lines.
	RemovedAbove
	// RemovedBelow marks the last line when lines after it were deleted.
	RemovedBelow
	// Modified marks a line that replaced lines from HEAD.
	Modified
)

// Marker returns the single-character panel marker.
func (c LineChange) Marker() string {
	switch c {
	case Added:
		return "+"
	case RemovedAbove:
		return "‾"
	case RemovedBelow:
		return "_"
	case Modified:
		return "~"
	}
	return " "
}

// LineChanges maps 1-based line numbers to their change.
type LineChanges map[int]LineChange

// Changes diffs current, the working content of path, against the version of
// path in HEAD of the enclosing repository.
func Changes(path string, current []byte) (LineChanges, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("vcs: open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("vcs: worktree: %w", err)
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, ErrNotTracked
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("vcs: head: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("vcs: commit: %w", err)
	}
	file, err := commit.File(filepath.ToSlash(rel))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, ErrNotTracked
		}
		return nil, fmt.Errorf("vcs: %s: %w", rel, err)
	}
	old, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("vcs: %s: %w", rel, err)
	}
	return DiffLines(old, string(current)), nil
}

// DiffLines returns the markers for turning old into current.
func DiffLines(old, current string) LineChanges {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	changes := LineChanges{}
	total := countLines(current)
	line := 1
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffInsert:
			for j := 0; j < n; j++ {
				changes[line+j] = Added
			}
			line += n
		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				added := countLines(diffs[i+1].Text)
				for j := 0; j < added; j++ {
					changes[line+j] = Modified
				}
				line += added
				i++
				continue
			}
			switch {
			case line <= total:
				changes[line] = RemovedAbove
			case total > 0:
				changes[total] = RemovedBelow
			}
		}
	}
	return changes
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
