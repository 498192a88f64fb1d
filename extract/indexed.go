// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/biogo/store/llrb"

	"github.com/AroneyS/singlem/sequence"
)

// Indexed is an Extractor that builds an index of header offsets for each
// reference file it is asked about and uses it to seek directly to the
// requested records. An index is rebuilt when the size or modification time
// of its file changes. Indexed is safe for concurrent use.
type Indexed struct {
	mu    sync.Mutex
	cache map[string]*index
}

// NewIndexed returns a new Indexed with an empty index cache.
func NewIndexed() *Indexed {
	return &Indexed{cache: make(map[string]*index)}
}

// index is the header index of a single file.
type index struct {
	size    int64
	modTime time.Time
	ids     llrb.Tree
}

// entry is an identifier and the offsets of all headers carrying it.
type entry struct {
	id      string
	offsets []int64
}

func (e *entry) Compare(b llrb.Comparable) int {
	return strings.Compare(e.id, b.(*entry).id)
}

// Extract returns the records in the FASTA file at path whose identifiers
// are in ids, in file order. A malformed reference file results in a
// *sequence.FormatError.
func (x *Indexed) Extract(ids []string, path string) ([]sequence.Record, error) {
	req, err := newRequest(ids, path)
	if err != nil {
		return nil, err
	}
	idx, err := x.index(path)
	if err != nil {
		return nil, err
	}

	var offsets []int64
	for _, id := range req.ids {
		e := idx.ids.Get(&entry{id: id})
		if e == nil {
			continue
		}
		offsets = append(offsets, e.(*entry).offsets...)
	}
	recs := make([]sequence.Record, 0, len(offsets))
	if len(offsets) == 0 {
		return recs, nil
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	for _, off := range offsets {
		_, err = f.Seek(off, io.SeekStart)
		if err != nil {
			return nil, err
		}
		rec, err := sequence.NewReader(f).Read()
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("extract: %s changed while reading: no record at offset %d", path, off)
			}
			return nil, err
		}
		if !req.has(rec.ID()) {
			return nil, fmt.Errorf("extract: %s changed while reading: unexpected record %q at offset %d", path, rec.ID(), off)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// IDs returns the identifiers present in the FASTA file at path in
// lexical order.
func (x *Indexed) IDs(path string) ([]string, error) {
	idx, err := x.index(path)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, idx.ids.Len())
	idx.ids.Do(func(c llrb.Comparable) (done bool) {
		ids = append(ids, c.(*entry).id)
		return false
	})
	return ids, nil
}

// index returns a current index for path, building it if needed.
func (x *Indexed) index(path string) (*index, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.cache == nil {
		x.cache = make(map[string]*index)
	}
	idx, ok := x.cache[path]
	if ok && idx.size == fi.Size() && idx.modTime.Equal(fi.ModTime()) {
		return idx, nil
	}

	idx, err = buildIndex(path)
	if err != nil {
		delete(x.cache, path)
		return nil, err
	}
	idx.size = fi.Size()
	idx.modTime = fi.ModTime()
	x.cache[path] = idx
	return idx, nil
}

func buildIndex(path string) (*index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var idx index
	r := sequence.NewReader(f)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return &idx, nil
		}
		if err != nil {
			return nil, err
		}
		q := &entry{id: rec.ID()}
		if e := idx.ids.Get(q); e != nil {
			e := e.(*entry)
			e.offsets = append(e.offsets, r.Offset())
			continue
		}
		q.offsets = []int64{r.Offset()}
		idx.ids.Insert(q)
	}
}
