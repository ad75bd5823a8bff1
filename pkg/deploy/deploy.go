// Package deploy packs the static site and ships it to web servers.
package deploy

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/opst/hbnb/pkg/configs"
	xe "github.com/opst/hbnb/pkg/errors"
	"github.com/opst/hbnb/pkg/remote"
	"github.com/opst/hbnb/pkg/utils/archive"
)

const (
	// prefix of archive names and release directories.
	ReleasePrefix = "web_static_"

	archiveExt      = ".tgz"
	timestampFormat = "20060102150405"
	uploadDir       = "/tmp/"
)

var (
	ErrArchiveNotFound = errors.New("archive not found")
	ErrInvalidArchive  = errors.New("invalid archive")
)

// Dialer connects to a host.
type Dialer func(ctx context.Context, host string) (remote.Host, error)

type Deployer struct {
	// directory to be packed.
	Source string

	// when true, Pack archives what symlinks under Source point to.
	FollowSymlinks bool

	// local directory where archives are put.
	Versions string

	// directory on hosts where releases are extracted.
	Releases string

	// symlink on hosts pointing the current release.
	Current string

	Hosts []string
	Dial  Dialer

	Logger *log.Logger
	Now    func() time.Time
}

// New creates a Deployer which reaches hosts over SSH.
func New(conf configs.DeployConfig, logger *log.Logger) *Deployer {
	sshConf := remote.SSHConfig{
		User:       conf.User,
		KeyFile:    conf.KeyFile,
		KnownHosts: conf.KnownHosts,
	}
	return &Deployer{
		Source:         conf.Source,
		FollowSymlinks: conf.FollowSymlinks,
		Versions:       conf.Versions,
		Releases:       conf.Releases,
		Current:        conf.Current,
		Hosts:          conf.Hosts,
		Dial: func(ctx context.Context, host string) (remote.Host, error) {
			return remote.Dial(ctx, host, sshConf)
		},
		Logger: logger,
		Now:    time.Now,
	}
}

// Pack archives Source into Versions as "web_static_<YYYYMMDDHHMMSS>.tgz".
//
// Entries in the archive are placed under the directory named as Source.
//
// # Returns
//
// - string: path to the created archive.
//
// - error
func (d *Deployer) Pack(ctx context.Context) (string, error) {
	if err := os.MkdirAll(d.Versions, os.FileMode(0755)); err != nil {
		return "", xe.Wrap(err)
	}

	name := ReleasePrefix + d.Now().Format(timestampFormat) + archiveExt
	dest := filepath.Join(d.Versions, name)

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, os.FileMode(0644))
	if err != nil {
		return "", xe.Wrap(err)
	}

	opts := []archive.TarOption{archive.WithPrefix(filepath.Base(filepath.Clean(d.Source)))}
	if d.FollowSymlinks {
		opts = append(opts, archive.FollowSymlinks())
	}
	stats, err := archive.TarGz(ctx, d.Source, f, opts...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return "", xe.WrapWithNote("packing "+d.Source, err)
	}

	d.Logger.Printf("%s packed: %s -> %d bytes (%d entries)", d.Source, dest, stats.Bytes, stats.Entries)
	return dest, nil
}

// DoDeploy distributes the archive to all hosts, and makes it the current release.
//
// It stops at the first failure.
func (d *Deployer) DoDeploy(ctx context.Context, archivePath string) error {
	if s, err := os.Stat(archivePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArchiveNotFound, archivePath)
		}
		return xe.Wrap(err)
	} else if !s.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a file", ErrArchiveNotFound, archivePath)
	}
	if err := d.verify(archivePath); err != nil {
		return err
	}

	for _, h := range d.Hosts {
		if err := d.withHost(ctx, h, func(host remote.Host) error {
			return d.deployTo(ctx, host, archivePath)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) deployTo(ctx context.Context, host remote.Host, archivePath string) error {
	archiveName := filepath.Base(archivePath)
	upload := uploadDir + archiveName
	release := d.Releases + "/" + strings.TrimSuffix(archiveName, filepath.Ext(archiveName))
	extracted := release + "/" + filepath.Base(filepath.Clean(d.Source))

	if err := host.Put(ctx, archivePath, upload); err != nil {
		return fmt.Errorf("[%s] upload %s: %w", host.Name(), archivePath, err)
	}

	for _, command := range []string{
		"mkdir -p " + remote.Quote(release+"/"),
		"tar -xzf " + remote.Quote(upload) + " -C " + remote.Quote(release+"/"),
		"rm " + remote.Quote(upload),
		"mv " + remote.Quote(extracted) + "/* " + remote.Quote(release+"/"),
		"rm -rf " + remote.Quote(extracted),
		"rm -rf " + remote.Quote(d.Current),
		"ln -s " + remote.Quote(release+"/") + " " + remote.Quote(d.Current),
	} {
		if _, err := host.Run(ctx, command); err != nil {
			return err
		}
	}

	d.Logger.Printf("[%s] new version deployed: %s", host.Name(), release)
	return nil
}

// verify checks that archivePath is a tar.gz whose entries are under the directory named as Source.
//
// Releases are made by moving that directory's content up, so other archives can not be deployed.
func (d *Deployer) verify(archivePath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return xe.Wrap(err)
	}
	defer f.Close()

	root := filepath.Base(filepath.Clean(d.Source)) + "/"
	empty := true
	err = archive.TarGzWalk(f, func(h *tar.Header, _ io.Reader, err error) error {
		if err != nil {
			return err
		}
		empty = false
		if !strings.HasPrefix(h.Name, root) {
			return fmt.Errorf("%w: %s: %s is not in %s", ErrInvalidArchive, archivePath, h.Name, root)
		}
		return archive.WalkBreak()
	})
	switch {
	case errors.Is(err, ErrInvalidArchive):
		return err
	case err != nil:
		return fmt.Errorf("%w: %s: %w", ErrInvalidArchive, archivePath, err)
	case empty:
		return fmt.Errorf("%w: %s is empty", ErrInvalidArchive, archivePath)
	}
	return nil
}

// Deploy packs Source and deploys it.
func (d *Deployer) Deploy(ctx context.Context) (string, error) {
	archivePath, err := d.Pack(ctx)
	if err != nil {
		return "", err
	}
	return archivePath, d.DoDeploy(ctx, archivePath)
}

// Clean removes archives in Versions and releases on hosts, except for the most recent ones.
//
// number is how many are kept. 0 or less are treated as 1.
func (d *Deployer) Clean(ctx context.Context, number int) error {
	keep := max(number, 1)

	if err := d.cleanLocal(keep); err != nil {
		return err
	}

	for _, h := range d.Hosts {
		if err := d.withHost(ctx, h, func(host remote.Host) error {
			return d.cleanRemote(ctx, host, keep)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) cleanLocal(keep int) error {
	entries, err := os.ReadDir(d.Versions)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return xe.Wrap(err)
	}

	type archiveFile struct {
		name    string
		modTime time.Time
	}
	archives := []archiveFile{}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasPrefix(e.Name(), ReleasePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return xe.Wrap(err)
		}
		archives = append(archives, archiveFile{name: e.Name(), modTime: info.ModTime()})
	}

	// newest first. archives made in the same second are ordered by name.
	sort.SliceStable(archives, func(i, j int) bool {
		if !archives[i].modTime.Equal(archives[j].modTime) {
			return archives[i].modTime.After(archives[j].modTime)
		}
		return archives[i].name > archives[j].name
	})

	for _, a := range outdated(archives, keep) {
		p := filepath.Join(d.Versions, a.name)
		if err := os.Remove(p); err != nil {
			return xe.Wrap(err)
		}
		d.Logger.Printf("removed: %s", p)
	}
	return nil
}

func (d *Deployer) cleanRemote(ctx context.Context, host remote.Host, keep int) error {
	out, err := host.Run(ctx, "ls -1t "+remote.Quote(d.Releases))
	if err != nil {
		return err
	}

	releases := []string{}
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if strings.HasPrefix(name, ReleasePrefix) {
			releases = append(releases, name)
		}
	}

	for _, name := range outdated(releases, keep) {
		p := d.Releases + "/" + name
		if _, err := host.Run(ctx, "rm -rf "+remote.Quote(p)); err != nil {
			return err
		}
		d.Logger.Printf("[%s] removed: %s", host.Name(), p)
	}
	return nil
}

func outdated[T any](newestFirst []T, keep int) []T {
	if len(newestFirst) <= keep {
		return nil
	}
	return newestFirst[keep:]
}

func (d *Deployer) withHost(ctx context.Context, name string, f func(remote.Host) error) error {
	host, err := d.Dial(ctx, name)
	if err != nil {
		return fmt.Errorf("[%s] connect: %w", name, err)
	}
	defer host.Close()
	return f(host)
}
