// cache.go - Implement the Cache object.
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
// Copyright (C) 2022  Ali AslRousta <aslrousta@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cache

import (
	"encoding/base64"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

const fileExt = ".out"

// Cache stores expanded documents on disk, so that unchanged inputs
// need not be expanded again.  A Cache can be used concurrently.
type Cache struct {
	mu       sync.Mutex
	cacheDir string
	entries  map[string]*entry
	start    time.Time
}

// NewCache creates a new cache, backed by the directory dir.  If dir
// is empty, the directory given by the MEX_CACHE environment variable
// is used, and failing this a "mex" subdirectory of the user's cache
// directory.  The cache is pre-populated with any entries found in
// the directory.
func NewCache(dir string) (*Cache, error) {
	c := &Cache{
		entries: make(map[string]*entry),
		start:   time.Now(),
	}

	if len(dir) == 0 {
		dir = os.Getenv("MEX_CACHE")
	}
	if len(dir) == 0 {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "mex")
	}
	c.cacheDir = dir
	err := os.MkdirAll(c.cacheDir, 0755)
	if err != nil {
		return nil, err
	}

	files, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, de := range files {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, fileExt) {
			log.Printf("cache %s: unexpected file %q", c.cacheDir, name)
			continue
		}
		fi, err := de.Info()
		if err != nil {
			continue
		}
		hash := strings.TrimSuffix(name, fileExt)
		e := &entry{
			Size: fi.Size(),
			Time: fi.ModTime(),
		}
		c.entries[hash] = e
		total += e.Size
	}
	log.Printf("cache %s: %s (%d objects)",
		c.cacheDir, byteSize(total), len(c.entries))

	return c, nil
}

// Close must be called when the cache is no longer needed.  Up to
// 'pruneLimit' bytes of data may be left behind in the cache
// directory; these files will be used to pre-populate future Cache
// instances.
//
// If pruneLimit >= 0, entries added using the current Cache instance
// will always be retained, even if their total size exceeds
// pruneLimit.  If pruneLimit < 0, all cached data is removed.
func (c *Cache) Close(pruneLimit int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var of oldestFirst
	var total int64
	for hash, e := range c.entries {
		of = append(of, pruneEntry{key: hash, entry: e})
		total += e.Size
	}
	sort.Sort(of)

	var err error
	var pruneCount int
	var pruneBytes int64
	for _, pe := range of {
		if total <= pruneLimit {
			break
		}
		if pruneLimit >= 0 && c.start.Before(pe.Time) {
			break
		}
		e2 := os.Remove(c.filePath(pe.key))
		if err == nil {
			err = e2
		}
		pruneCount++
		pruneBytes += pe.Size
		total -= pe.Size
	}
	if pruneCount > 0 {
		log.Printf("cache %s: removed %s (%d objects)",
			c.cacheDir, byteSize(pruneBytes), pruneCount)
	}

	if pruneLimit < 0 {
		_ = os.Remove(c.cacheDir)
	}

	c.entries = nil
	return err
}

// Has returns true, if the cache contains data which has previously
// been stored for the given key.  The data can be retrieved using the
// .Get() method.
func (c *Cache) Has(key string) bool {
	hash := hashKey(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[hash]
	if ok {
		entry.Time = time.Now()
	}
	return ok
}

// Put stores new data in the cache.  The data can later be retrieved
// using the given key.  Any preexisting data using the same key is
// overwritten by subsequent calls to .Put().
func (c *Cache) Put(key string, data []byte) error {
	hash := hashKey(key)
	path := c.filePath(hash)

	// Readers must never see a partial entry.
	tmp := filepath.Join(c.cacheDir, uuid.NewString()+".tmp")
	err := os.WriteFile(tmp, data, 0644)
	if err != nil {
		return err
	}
	err = os.Rename(tmp, path)
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	c.mu.Lock()
	c.entries[hash] = &entry{
		Size: int64(len(data)),
		Time: time.Now(),
	}
	c.mu.Unlock()
	return nil
}

// Get returns data which has previously been stored in the cache for
// the given key.
func (c *Cache) Get(key string) ([]byte, error) {
	hash := hashKey(key)
	data, err := os.ReadFile(c.filePath(hash))
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if e, ok := c.entries[hash]; ok {
		e.Time = time.Now()
	}
	c.mu.Unlock()
	return data, nil
}

// Dir returns the directory backing the cache.
func (c *Cache) Dir() string {
	return c.cacheDir
}

func (c *Cache) filePath(hash string) string {
	return filepath.Join(c.cacheDir, hash+fileExt)
}

func hashKey(key string) string {
	h := sha3.NewShake128()
	h.Write([]byte(key))
	buf := make([]byte, 15)
	h.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

type entry struct {
	Size int64
	Time time.Time
}

type pruneEntry struct {
	key string
	*entry
}

type oldestFirst []pruneEntry

func (of oldestFirst) Len() int { return len(of) }
func (of oldestFirst) Less(i, j int) bool {
	return of[i].Time.Before(of[j].Time)
}
func (of oldestFirst) Swap(i, j int) { of[i], of[j] = of[j], of[i] }
