/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package analyze

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"bennypowers.dev/detective/detective"
)

// BatchResult holds the outcome of analyzing one file in batch mode.
type BatchResult struct {
	File     string              `json:"file"`
	Requires *detective.Requires `json:"requires,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Batch analyzes files with parallel workers. Results arrive in completion
// order on the returned channel, which is closed once every file is done.
// A parallel value <= 0 uses one worker per CPU.
func (a *Analyzer) Batch(files []string, parallel int) <-chan BatchResult {
	results := make(chan BatchResult, len(files))

	go func() {
		defer close(results)

		if parallel <= 0 {
			parallel = runtime.NumCPU()
		}
		parallel = min(parallel, max(len(files), 1))
		a.logger.Debug("starting batch", zap.Int("files", len(files)), zap.Int("workers", parallel))

		jobs := make(chan string, len(files))

		var wg sync.WaitGroup
		for range parallel {
			wg.Go(func() {
				for file := range jobs {
					results <- a.batchFile(file)
				}
			})
		}

		for _, file := range files {
			jobs <- file
		}
		close(jobs)

		wg.Wait()
	}()

	return results
}

func (a *Analyzer) batchFile(file string) BatchResult {
	result := BatchResult{File: file}
	res, err := a.File(file)
	if err != nil {
		a.logger.Debug("analysis failed", zap.String("file", file), zap.Error(err))
		result.Error = err.Error()
		return result
	}
	result.Requires = detective.Metadata(res)
	return result
}
