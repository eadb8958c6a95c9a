/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package acptest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/paths"
)

// Stored values are an 8-byte big-endian creation sequence followed by the
// marshaled ObjectInfo. Keys are resource paths.

type record struct {
	seq  uint64
	path string
	info *dynamicpb.Message
}

func openDB() (*badger.DB, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithNumVersionsToKeep(1).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

func (s *Server) kindOf(rp string) (*apis.Kind, error) {
	k, ok := s.byLabel[paths.Label(rp)]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown collection %q in %s", paths.Label(rp), rp)
	}
	return k, nil
}

func (s *Server) decode(rp string, val []byte) (record, error) {
	if len(val) < 8 {
		return record{}, status.Errorf(codes.DataLoss, "corrupt record %s", rp)
	}
	k, err := s.kindOf(rp)
	if err != nil {
		return record{}, err
	}
	info := dynamicpb.NewMessage(k.ObjectInfo)
	if err := proto.Unmarshal(val[8:], info); err != nil {
		return record{}, status.Errorf(codes.DataLoss, "decode %s: %v", rp, err)
	}
	return record{seq: binary.BigEndian.Uint64(val[:8]), path: rp, info: info}, nil
}

func (s *Server) load(txn *badger.Txn, rp string) (record, error) {
	item, err := txn.Get([]byte(rp))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record{}, status.Errorf(codes.NotFound, "object %s not found", rp)
	}
	if err != nil {
		return record{}, status.Errorf(codes.Internal, "load %s: %v", rp, err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return record{}, status.Errorf(codes.Internal, "load %s: %v", rp, err)
	}
	return s.decode(rp, val)
}

func (s *Server) exists(txn *badger.Txn, rp string) bool {
	_, err := txn.Get([]byte(rp))
	return err == nil
}

func (s *Server) save(txn *badger.Txn, rec record) error {
	b, err := proto.Marshal(rec.info)
	if err != nil {
		return status.Errorf(codes.Internal, "encode %s: %v", rec.path, err)
	}
	val := make([]byte, 8, 8+len(b))
	binary.BigEndian.PutUint64(val, rec.seq)
	val = append(val, b...)
	if err := txn.Set([]byte(rec.path), val); err != nil {
		return status.Errorf(codes.Internal, "store %s: %v", rec.path, err)
	}
	return nil
}

// members returns the direct members of the collection cp in creation order.
func (s *Server) members(txn *badger.Txn, cp string) ([]record, error) {
	prefix := cp + paths.Sep
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var out []record
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		key := string(item.KeyCopy(nil))
		if strings.Contains(key[len(prefix):], paths.Sep) {
			continue
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "list %s: %v", cp, err)
		}
		rec, err := s.decode(key, val)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out, nil
}

// subtree returns rp and every key below it.
func subtree(txn *badger.Txn, rp string) [][]byte {
	keys := [][]byte{[]byte(rp)}
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(rp + paths.Sep)
	it := txn.NewIterator(opts)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}
