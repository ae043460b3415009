// Package gitdescribe resolves a human readable name for the commit a build
// is produced from, in the style of "git describe --tags".
package gitdescribe

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// AbbrevLength is the number of hex digits of the commit hash appended to a
// tag that is behind HEAD.
const AbbrevLength = 7

type tagCandidate struct {
	name      string
	annotated bool
}

// Describe opens the repository containing path, searching parent
// directories, and describes its HEAD.
func Describe(path string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return DescribeRepository(repo)
}

// DescribeRepository describes HEAD of repo:
//
//   - "<tag>" when HEAD is tagged,
//   - "<tag>-<n>-g<abbrev>" when n commits reachable from HEAD are not
//     reachable from the nearest tag,
//   - the full commit hash when no tag is reachable.
//
// Among reachable tags the one leaving the fewest commits wins; ties go to
// annotated tags, then the greater name.
func DescribeRepository(repo *gogit.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	tags, err := tagsByCommit(repo)
	if err != nil {
		return "", err
	}

	headAncestors, err := ancestors(repo, head.Hash())
	if err != nil {
		return "", err
	}

	var (
		found    *tagCandidate
		distance int
	)
	for hash, tag := range tags {
		if _, ok := headAncestors[hash]; !ok {
			continue
		}
		tagAncestors, err := ancestors(repo, hash)
		if err != nil {
			return "", err
		}
		// Every ancestor of a reachable tag is also an ancestor of HEAD.
		n := len(headAncestors) - len(tagAncestors)
		if found == nil || n < distance || (n == distance && better(tag, *found)) {
			tag := tag
			found = &tag
			distance = n
		}
	}

	if found == nil {
		return head.Hash().String(), nil
	}
	if distance == 0 {
		return found.name, nil
	}
	return fmt.Sprintf("%s-%d-g%s", found.name, distance, head.Hash().String()[:AbbrevLength]), nil
}

// ancestors returns the set of commits reachable from from, itself included.
func ancestors(repo *gogit.Repository, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("failed to get commit log of %s: %w", from, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commit log of %s: %w", from, err)
	}
	return seen, nil
}

// tagsByCommit maps every tagged commit to the tag that best names it.
// Annotated tags win over lightweight ones, then the greater name wins.
func tagsByCommit(repo *gogit.Repository) (map[plumbing.Hash]tagCandidate, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer refs.Close()

	tags := make(map[plumbing.Hash]tagCandidate)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		candidate := tagCandidate{name: ref.Name().Short()}
		target := ref.Hash()

		tagObj, err := repo.TagObject(ref.Hash())
		switch {
		case err == nil:
			commit, err := tagObj.Commit()
			if err != nil {
				// Tags of trees or blobs cannot describe a commit.
				return nil
			}
			target = commit.Hash
			candidate.annotated = true
		case !errors.Is(err, plumbing.ErrObjectNotFound):
			return fmt.Errorf("failed to read tag %s: %w", candidate.name, err)
		}

		if current, ok := tags[target]; ok && !better(candidate, current) {
			return nil
		}
		tags[target] = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func better(a, b tagCandidate) bool {
	if a.annotated != b.annotated {
		return a.annotated
	}
	return a.name > b.name
}
