// Package archive reads and writes gzipped tarballs of directory trees.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

var ErrLoopSymlink = errors.New("symlink loop detected")

// Stats summarizes an archive.
type Stats struct {
	// number of entries (files, directories and symlinks)
	Entries int

	// total size of regular files, before compression.
	Bytes int64
}

type tarOption struct {
	followSymlinks bool
	prefix         string
}

type TarOption func(*tarOption) *tarOption

// FollowSymlinks archives what symlinks point to, in place of the links.
func FollowSymlinks() TarOption {
	return func(o *tarOption) *tarOption {
		o.followSymlinks = true
		return o
	}
}

// WithPrefix puts entries under the directory prefix in the archive.
//
// For example, with WithPrefix("web_static"), "index.html" in root is archived as "web_static/index.html".
func WithPrefix(prefix string) TarOption {
	return func(o *tarOption) *tarOption {
		o.prefix = prefix
		return o
	}
}

// TarGz archives files under root into dest as gzipped tar.
//
// dest is not closed. Archiving stops when ctx is done.
func TarGz(ctx context.Context, root string, dest io.Writer, options ...TarOption) (Stats, error) {
	gz := gzip.NewWriter(dest)
	stats, err := Tar(ctx, root, gz, options...)
	if err != nil {
		return stats, err
	}
	return stats, gz.Close()
}

// Tar archives files under root into dest.
//
// Directories are archived as entries, so empty directories are kept.
// Entries in a directory are archived in name order, parents first.
// dest is not closed.
func Tar(ctx context.Context, root string, dest io.Writer, options ...TarOption) (Stats, error) {
	opt := &tarOption{}
	for _, o := range options {
		opt = o(opt)
	}

	absroot, err := filepath.Abs(root)
	if err != nil {
		return Stats{}, err
	}
	rootInfo, err := os.Stat(absroot)
	if err != nil {
		return Stats{}, err
	}

	p := &packer{
		w:      tar.NewWriter(dest),
		follow: opt.followSymlinks,
		prefix: opt.prefix,
		seen:   map[string]struct{}{},
	}

	if p.prefix != "" {
		if err := p.w.WriteHeader(&tar.Header{
			Typeflag: tar.TypeDir,
			Name:     path.Clean(p.prefix) + "/",
			Mode:     0o755,
			ModTime:  rootInfo.ModTime(),
		}); err != nil {
			return p.stats, err
		}
		p.stats.Entries += 1
	}

	if rootInfo.IsDir() {
		err = p.dir(ctx, absroot, "")
	} else {
		err = p.file(ctx, absroot, rootInfo.Name(), rootInfo)
	}
	if err != nil {
		return p.stats, err
	}
	return p.stats, p.w.Close()
}

type packer struct {
	w      *tar.Writer
	follow bool
	prefix string
	stats  Stats

	// real paths of directories being archived, from root to the current one.
	seen map[string]struct{}
}

// dir archives entries in the directory fullpath, archived as rel.
func (p *packer) dir(ctx context.Context, fullpath string, rel string) error {
	if p.follow {
		real, err := filepath.EvalSymlinks(fullpath)
		if err != nil {
			return err
		}
		if _, ok := p.seen[real]; ok {
			return ErrLoopSymlink
		}
		p.seen[real] = struct{}{}
		defer delete(p.seen, real)
	}

	children, err := os.ReadDir(fullpath)
	if err != nil {
		return err
	}
	for _, c := range children {
		childpath := filepath.Join(fullpath, c.Name())
		childrel := path.Join(rel, c.Name())

		info, err := os.Lstat(childpath)
		if err != nil {
			return err
		}
		if p.follow && info.Mode()&fs.ModeSymlink != 0 {
			if info, err = os.Stat(childpath); err != nil {
				return err
			}
		}

		if err := p.file(ctx, childpath, childrel, info); err != nil {
			return err
		}
		if info.IsDir() {
			if err := p.dir(ctx, childpath, childrel); err != nil {
				return err
			}
		}
	}
	return nil
}

// file writes a single entry. Contents of directories are not written.
func (p *packer) file(ctx context.Context, fullpath string, rel string, info fs.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	linkname := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		ln, err := os.Readlink(fullpath)
		if err != nil {
			return err
		}
		linkname = ln
	}

	hdr, err := tar.FileInfoHeader(info, linkname)
	if err != nil {
		return err
	}
	hdr.Name = path.Join(p.prefix, rel)
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := p.w.WriteHeader(hdr); err != nil {
		return err
	}
	p.stats.Entries += 1

	if !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(fullpath)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := copyContext(ctx, p.w, f)
	p.stats.Bytes += n
	return err
}

// copyContext is io.Copy which stops between chunks when ctx is done.
func copyContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, rerr := src.Read(buf)
		if 0 < n {
			m, werr := dst.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, werr
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

var errWalkBreak = errors.New("walk break")

// WalkBreak is returned by TarWalker to stop walking without error.
func WalkBreak() error {
	return errWalkBreak
}

// TarWalker handles an entry of tarball.
//
// payload is the content of the entry. err is an error on reading the header,
// and never io.EOF.
//
// Returning WalkBreak() stops walking without error.
type TarWalker func(header *tar.Header, payload io.Reader, err error) error

// TarGzWalk calls walker for each entry of the tar.gz stream from.
//
// from is not closed.
func TarGzWalk(from io.Reader, walker TarWalker) error {
	gz, err := gzip.NewReader(from)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if werr := walker(header, tr, err); errors.Is(werr, errWalkBreak) {
			return nil
		} else if werr != nil {
			return werr
		}
	}
}
