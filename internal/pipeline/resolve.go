package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/naming"
)

// Resolution describes what landed in the output tree for one file.
type Resolution struct {
	Outcome     Outcome // Compressed or Passthrough.
	Output      string
	InputBytes  int64
	OutputBytes int64
}

// Resolver decides between an input and its compressed candidate and moves
// the winner into the output tree. The candidate wins only when it exists
// and is strictly smaller than the input. Either way the candidate is gone
// from the temp tree afterwards, and the output carries the input's access
// and modification times.
type Resolver struct {
	Fs     afero.Fs
	Suffix string
}

// Resolve places in (or candidate) at out. A zero candidate means the input
// is copied through. Errors are fatal to the run: a vanished input, an
// occupied destination, or a failed filesystem operation.
func (r *Resolver) Resolve(in string, candidate naming.ResolvedPath, out naming.IntendedPath) (Resolution, error) {
	inInfo, err := r.Fs.Stat(in)
	if err != nil {
		r.removeCandidate(candidate)
		return Resolution{}, fmt.Errorf("%w: %s", ErrInputVanished, in)
	}
	if ok, _ := afero.Exists(r.Fs, out.String()); ok {
		r.removeCandidate(candidate)
		return Resolution{}, fmt.Errorf("%w: %s", ErrDestinationExists, out)
	}

	if !candidate.IsZero() {
		candInfo, err := r.Fs.Stat(candidate.String())
		if err == nil && candInfo.Mode().IsRegular() && candInfo.Size() < inInfo.Size() {
			final := naming.CompressedPath(out, candidate, r.Suffix)
			if ok, _ := afero.Exists(r.Fs, final); ok {
				r.removeCandidate(candidate)
				return Resolution{}, fmt.Errorf("%w: %s", ErrDestinationExists, final)
			}
			if err := r.move(candidate.String(), final); err != nil {
				r.removeCandidate(candidate)
				return Resolution{}, err
			}
			if err := r.copyTimes(inInfo, final); err != nil {
				return Resolution{}, err
			}
			return Resolution{
				Outcome:     Compressed,
				Output:      final,
				InputBytes:  inInfo.Size(),
				OutputBytes: candInfo.Size(),
			}, nil
		}
		r.removeCandidate(candidate)
	}

	if err := r.copyFile(in, out.String(), inInfo.Mode().Perm()); err != nil {
		return Resolution{}, err
	}
	if err := r.copyTimes(inInfo, out.String()); err != nil {
		return Resolution{}, err
	}
	return Resolution{
		Outcome:     Passthrough,
		Output:      out.String(),
		InputBytes:  inInfo.Size(),
		OutputBytes: inInfo.Size(),
	}, nil
}

func (r *Resolver) removeCandidate(candidate naming.ResolvedPath) {
	if candidate.IsZero() {
		return
	}
	if ok, _ := afero.Exists(r.Fs, candidate.String()); ok {
		_ = r.Fs.Remove(candidate.String())
	}
}

// move renames src to dst, falling back to copy and remove when the two
// live on different devices.
func (r *Resolver) move(src, dst string) error {
	err := r.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	fi, err := r.Fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := r.copyFile(src, dst, fi.Mode().Perm()); err != nil {
		return err
	}
	if err := r.Fs.Remove(src); err != nil {
		return fmt.Errorf("remove %s: %w", src, err)
	}
	return nil
}

// copyFile copies src to a new file dst. dst must not exist.
func (r *Resolver) copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := r.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := r.Fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
		if err != nil {
			_ = r.Fs.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}

func (r *Resolver) copyTimes(src os.FileInfo, dst string) error {
	if err := r.Fs.Chtimes(dst, accessTime(src), src.ModTime()); err != nil {
		return fmt.Errorf("set times on %s: %w", dst, err)
	}
	return nil
}
