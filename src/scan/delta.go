package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// TargetBranchEnv overrides the branch changed files are compared to.
const TargetBranchEnv = "LINTRC_TARGET_BRANCH"

// Delta detects files changed relative to a baseline branch.
type Delta struct {
	RootDir      string
	TargetBranch string
	Verbose      bool
}

// ChangedFiles returns changed paths relative to RootDir: uncommitted
// work plus commits not on the target branch. A nil map means "no
// baseline, scan everything", e.g. outside a git repository.
func (d *Delta) ChangedFiles(ctx context.Context) (map[string]bool, error) {
	repo, err := git.PlainOpenWithOptions(d.RootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		d.logf("delta: not a git repo, scanning all files")
		return nil, nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		d.logf("delta: bare repository, scanning all files")
		return nil, nil
	}

	prefix, err := d.repoPrefix(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	worktree, err := worktreeChanges(wt)
	if err != nil {
		d.logf("delta: worktree status failed: %v, scanning all files", err)
		return nil, nil
	}
	branch, err := d.branchChanges(ctx, repo)
	if err != nil {
		d.logf("delta: branch diff failed: %v, scanning all files", err)
		return nil, nil
	}

	changed := make(map[string]bool)
	for _, set := range []map[string]bool{worktree, branch} {
		for p := range set {
			if prefix != "" {
				if !strings.HasPrefix(p, prefix+"/") {
					continue
				}
				p = strings.TrimPrefix(p, prefix+"/")
			}
			changed[p] = true
		}
	}
	if len(changed) == 0 {
		d.logf("delta: no changes detected")
	}
	return changed, nil
}

// repoPrefix is RootDir relative to the repository root, slash-separated.
func (d *Delta) repoPrefix(repoRoot string) (string, error) {
	root, err := filepath.Abs(d.RootDir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(repoRoot); err == nil {
		repoRoot = resolved
	}
	rel, err := filepath.Rel(repoRoot, root)
	if err != nil {
		return "", fmt.Errorf("locating %s in repository: %w", d.RootDir, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

func worktreeChanges(wt *git.Worktree) (map[string]bool, error) {
	status, err := wt.Status()
	if err != nil {
		return nil, err
	}
	changed := make(map[string]bool)
	for path, s := range status {
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		changed[path] = true
	}
	return changed, nil
}

func (d *Delta) branchChanges(ctx context.Context, repo *git.Repository) (map[string]bool, error) {
	target := d.targetBranch(repo)
	if target == "" {
		return nil, nil
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}

	targetRef, err := repo.Reference(plumbing.NewBranchReferenceName(target), true)
	if err != nil {
		targetRef, err = repo.Reference(plumbing.NewRemoteReferenceName("origin", target), true)
		if err != nil {
			return nil, nil
		}
	}
	targetCommit, err := repo.CommitObject(targetRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting target commit: %w", err)
	}

	// On the target branch itself, compare the latest commit to its parent.
	if headCommit.Hash == targetCommit.Hash {
		if headCommit.NumParents() == 0 {
			return nil, nil
		}
		parent, err := headCommit.Parent(0)
		if err != nil {
			return nil, nil
		}
		targetCommit = parent
	}

	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}
	targetTree, err := targetCommit.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTreeWithOptions(ctx, targetTree, headTree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	changed := make(map[string]bool)
	for _, change := range changes {
		if name := changeName(change); name != "" {
			changed[name] = true
		}
	}
	return changed, nil
}

func (d *Delta) targetBranch(repo *git.Repository) string {
	if branch := os.Getenv(TargetBranchEnv); branch != "" {
		return branch
	}
	if d.TargetBranch != "" {
		return d.TargetBranch
	}
	for _, v := range []string{
		"CI_MERGE_REQUEST_TARGET_BRANCH_NAME", // GitLab CI
		"GITHUB_BASE_REF",                     // GitHub Actions
		"BITBUCKET_PR_DESTINATION_BRANCH",     // Bitbucket
		"CHANGE_TARGET",                       // Jenkins
	} {
		if branch := os.Getenv(v); branch != "" {
			return branch
		}
	}
	// origin/HEAD is symbolic; read its target without resolving.
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "HEAD"), false)
	if err == nil {
		if branch, ok := strings.CutPrefix(ref.Target().String(), "refs/remotes/origin/"); ok {
			return branch
		}
	}
	return "main"
}

func changeName(change *object.Change) string {
	action, err := change.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return change.To.Name
	case merkletrie.Delete:
		return change.From.Name
	}
	return ""
}

func (d *Delta) logf(format string, args ...any) {
	if d.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
