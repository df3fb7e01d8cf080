package release

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TagName returns the conventional tag for a released version.
func TagName(version string) string {
	return "v" + version
}

// Executor runs the ordered side-effect sequence for a new release:
// cargo publish, then resolve HEAD, then create the tag. Each step is a
// hard prerequisite for the next. Publish is never retried, and a tag
// failure after a successful publish is reported without any rollback.
type Executor struct {
	Runner Runner
	Tagger Tagger
	Dir    string
	Out    io.Writer
}

// Run publishes the crate and tags the current commit as v<version>.
func (e *Executor) Run(ctx context.Context, version string) error {
	fmt.Fprintln(e.Out, "  Running `cargo publish`")
	if err := e.Runner.Run(ctx, e.Dir, e.Out, e.Out, "cargo", "publish"); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	tag := TagName(version)
	fmt.Fprintf(e.Out, "  Tagging commit as %s\n", tag)

	sha, err := e.HeadSHA(ctx)
	if err != nil {
		return err
	}
	if err := e.Tagger.Tag(ctx, tag, sha); err != nil {
		return fmt.Errorf("tag %s: %w", tag, err)
	}

	fmt.Fprintln(e.Out, "  Done")
	return nil
}

// HeadSHA resolves the commit hash the tag will point at.
func (e *Executor) HeadSHA(ctx context.Context) (string, error) {
	out, err := e.Runner.Output(ctx, e.Dir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	sha := strings.TrimSpace(out)
	if sha == "" {
		return "", fmt.Errorf("resolve HEAD: empty commit hash")
	}
	return sha, nil
}
