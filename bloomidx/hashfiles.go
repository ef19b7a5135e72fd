package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"
)

type HashResult struct {
	File   string
	Digest string
}

func getAllFilesInDirectory(directory string) ([]string, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	filenames := make([]string, 0, len(files))

	for _, file := range files {
		fullPath, err := filepath.Abs(filepath.Join(directory, file.Name()))
		if err != nil {
			return nil, err
		}

		if file.IsDir() {
			subFiles, err := getAllFilesInDirectory(fullPath)
			if err != nil {
				return nil, err
			}
			filenames = append(filenames, subFiles...)
		} else {
			filenames = append(filenames, fullPath)
		}
	}

	return filenames, nil
}

// collectFiles expands a single directory argument, or validates a list of
// plain file paths.
func collectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no files provided")
	}
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return getAllFilesInDirectory(args[0])
		}
	}

	paths := make([]string, 0, len(args))
	for _, filename := range args {
		info, err := os.Stat(filename)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("cannot hash directories along with filepaths")
		}
		absPath, err := filepath.Abs(filename)
		if err != nil {
			return nil, err
		}
		paths = append(paths, absPath)
	}
	return paths, nil
}

// hashFiles digests files with a bounded worker pool. Results are sorted by
// path. The first failure cancels the remaining work.
func hashFiles(ctx context.Context, files []string, workers int, timeout time.Duration) ([]HashResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(len(files), workers)

	jobs := make(chan string, len(files))
	results := make(chan HashResult, len(files))
	errs := make(chan error, len(files))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wg := sync.WaitGroup{}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job, ok := <-jobs:
					if !ok {
						return
					}
					digest, err := hashFile(ctx, job)
					if err != nil {
						errs <- fmt.Errorf("%s: %w", job, err)
						cancel()
						return
					}
					results <- HashResult{File: job, Digest: digest}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- file:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	hashed := make([]HashResult, 0, len(files))
	for len(hashed) < len(files) {
		select {
		case result, ok := <-results:
			if !ok {
				select {
				case err := <-errs:
					return nil, err
				default:
				}
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("not all files processed successfully")
			}
			hashed = append(hashed, result)
		case err := <-errs:
			cancel()
			return nil, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	sort.Slice(hashed, func(i, j int) bool {
		return hashed[i].File < hashed[j].File
	})
	return hashed, nil
}

// hashFile returns the hex SHA-256 of a file's contents, checking ctx
// between chunks.
func hashFile(ctx context.Context, file string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}
	if stat.IsDir() {
		return "", fmt.Errorf("is a directory")
	}

	h := sha256.New()
	buffer := make([]byte, 1024*1024)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.Read(buffer)
		if n > 0 {
			h.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
