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
package packagejson_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/detective/internal/mapfs"
	"bennypowers.dev/detective/packagejson"
)

func TestCacheLoad(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/pkg/package.json", `{"name": "first"}`, 0644)
	cache := packagejson.NewCache()

	pkg, err := cache.Load(mfs, "/pkg/package.json")
	require.NoError(t, err)
	assert.Equal(t, "first", pkg.Name)

	// Changes on disk are not seen until the path is invalidated.
	require.NoError(t, mfs.WriteFile("/pkg/package.json", []byte(`{"name": "second"}`), 0644))
	again, err := cache.Load(mfs, "/pkg/package.json")
	require.NoError(t, err)
	assert.Same(t, pkg, again)

	cache.Invalidate("/pkg/package.json")
	assert.Zero(t, cache.Len())

	reloaded, err := cache.Load(mfs, "/pkg/package.json")
	require.NoError(t, err)
	assert.Equal(t, "second", reloaded.Name)
}

func TestCacheRemembersFailures(t *testing.T) {
	mfs := mapfs.New()
	cache := packagejson.NewCache()

	_, err := cache.Load(mfs, "/missing/package.json")
	assert.Error(t, err)

	mfs.AddFile("/missing/package.json", `{"name": "late"}`, 0644)
	_, err = cache.Load(mfs, "/missing/package.json")
	assert.Error(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheConcurrentLoads(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/pkg/package.json", `{"name": "shared"}`, 0644)
	cache := packagejson.NewCache()

	results := make([]*packagejson.PackageJSON, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Go(func() {
			pkg, err := cache.Load(mfs, "/pkg/package.json")
			if err == nil {
				results[i] = pkg
			}
		})
	}
	wg.Wait()

	for _, pkg := range results {
		assert.Same(t, results[0], pkg)
	}
	assert.NotNil(t, results[0])
}
