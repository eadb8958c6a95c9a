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
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/linked"
	"dirpx.dev/acp/paths"
	"dirpx.dev/acp/schema"
)

const controlService = schema.ControlService

type handler struct {
	request func(k *apis.Kind) *dynamicpb.Message
	run     func(s *Server, k *apis.Kind, req *dynamicpb.Message) (proto.Message, error)
}

var controlHandlers = map[string]handler{
	"GetServerInfo": {
		request: func(*apis.Kind) *dynamicpb.Message { return dynamicpb.NewMessage(schema.Base().GetServerInfoRequest) },
		run:     (*Server).serverInfo,
	},
}

var objectHandlers = map[string]handler{
	"Get": {
		request: func(*apis.Kind) *dynamicpb.Message { return dynamicpb.NewMessage(schema.Base().GetRequest) },
		run:     (*Server).get,
	},
	"List": {
		request: func(*apis.Kind) *dynamicpb.Message { return dynamicpb.NewMessage(schema.Base().ListRequest) },
		run:     (*Server).list,
	},
	"Put": {
		request: func(k *apis.Kind) *dynamicpb.Message { return dynamicpb.NewMessage(k.ObjectInfo) },
		run:     (*Server).put,
	},
	"Create": {
		request: func(k *apis.Kind) *dynamicpb.Message { return dynamicpb.NewMessage(k.CreateRequest) },
		run:     (*Server).create,
	},
	"Delete": {
		request: func(*apis.Kind) *dynamicpb.Message { return dynamicpb.NewMessage(schema.Base().DeleteRequest) },
		run:     (*Server).delete,
	},
}

func (s *Server) serverInfo(_ *apis.Kind, _ *dynamicpb.Message) (proto.Message, error) {
	md := schema.Base().ServerInfo
	reply := dynamicpb.NewMessage(md)
	reply.Set(md.Fields().ByName(schema.FieldVersion), protoreflect.ValueOfString(s.version))
	reply.Set(md.Fields().ByName(schema.FieldServerName), protoreflect.ValueOfString(ServerName))
	return reply, nil
}

func (s *Server) get(k *apis.Kind, req *dynamicpb.Message) (proto.Message, error) {
	rp := schema.PathField(req, schema.FieldResourcePath)
	if err := checkLabel(k, rp); err != nil {
		return nil, err
	}
	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = s.load(txn, rp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec.info, nil
}

func (s *Server) list(k *apis.Kind, req *dynamicpb.Message) (proto.Message, error) {
	cp := schema.PathField(req, schema.FieldCollectionPath)
	if err := checkLabel(k, cp); err != nil {
		return nil, err
	}
	reply := dynamicpb.NewMessage(k.ListReply)
	objects := reply.Mutable(k.ListReply.Fields().ByName(schema.FieldObjects)).List()
	err := s.db.View(func(txn *badger.Txn) error {
		if owner := paths.Collection(cp); owner != "" && !s.exists(txn, owner) {
			return status.Errorf(codes.NotFound, "object %s not found", owner)
		}
		recs, err := s.members(txn, cp)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			objects.Append(protoreflect.ValueOfMessage(rec.info))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *Server) create(k *apis.Kind, req *dynamicpb.Message) (proto.Message, error) {
	fields := k.CreateRequest.Fields()
	cp := schema.PathField(req, schema.FieldCollectionPath)
	if err := checkLabel(k, cp); err != nil {
		return nil, err
	}
	name := req.Get(fields.ByName(schema.FieldName)).String()
	if name == "" {
		name = defaultName(k)
	}
	if strings.Contains(name, paths.Sep) {
		return nil, status.Errorf(codes.InvalidArgument, "name %q must not contain %q", name, paths.Sep)
	}

	info := dynamicpb.NewMessage(k.ObjectInfo)
	if pfd := fields.ByName(schema.FieldProperties); req.Has(pfd) {
		props := proto.Clone(req.Get(pfd).Message().Interface())
		info.Set(k.ObjectInfo.Fields().ByName(schema.FieldProperties), protoreflect.ValueOfMessage(props.ProtoReflect()))
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if owner := paths.Collection(cp); owner != "" {
			ownerRec, err := s.load(txn, owner)
			if err != nil {
				return status.Errorf(codes.NotFound, "parent %s not found", owner)
			}
			ownerKind, _ := s.kindOf(ownerRec.path)
			if !ownerKind.HasChild(k.Label) {
				return status.Errorf(codes.InvalidArgument, "%s has no collection %q", ownerKind.Name, k.Label)
			}
		}
		id := uuid.NewString()
		if k.Label != paths.ModelsLabel {
			id = s.uniqueID(txn, cp, name)
		}
		rp := paths.Join(cp, id)
		if err := s.checkLinks(txn, rp, schema.Props(info)); err != nil {
			return err
		}
		schema.WriteInfo(info, schema.BasicInfo{Name: name, ID: id, ResourcePath: rp, Version: uuid.NewString()})
		if err := s.validate(k, info); err != nil {
			return err
		}
		s.seq++
		if err := s.save(txn, record{seq: s.seq, path: rp, info: info}); err != nil {
			return err
		}
		return s.createAutoChildren(txn, k, rp)
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *Server) createAutoChildren(txn *badger.Txn, k *apis.Kind, rp string) error {
	for _, ac := range s.auto[k.Label] {
		ck, ok := s.byLabel[ac.label]
		if !ok {
			continue
		}
		info := dynamicpb.NewMessage(ck.ObjectInfo)
		if ac.init != nil {
			ac.init(schema.Props(info))
		}
		cp := paths.Join(rp, ac.label)
		id := s.uniqueID(txn, cp, ac.name)
		crp := paths.Join(cp, id)
		schema.WriteInfo(info, schema.BasicInfo{Name: ac.name, ID: id, ResourcePath: crp, Version: uuid.NewString()})
		s.seq++
		if err := s.save(txn, record{seq: s.seq, path: crp, info: info}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) put(k *apis.Kind, req *dynamicpb.Message) (proto.Message, error) {
	in := schema.ReadInfo(req)
	rp := in.ResourcePath
	if err := checkLabel(k, rp); err != nil {
		return nil, err
	}
	next := proto.Clone(req).(*dynamicpb.Message)
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := s.load(txn, rp)
		if err != nil {
			return err
		}
		stored := schema.ReadInfo(rec.info)
		if in.Version != stored.Version {
			return status.Errorf(codes.Aborted, "version mismatch for %s: got %q, stored %q", rp, in.Version, stored.Version)
		}
		if err := s.checkLinks(txn, rp, schema.Props(next)); err != nil {
			return err
		}
		name := in.Name
		if name == "" {
			name = stored.Name
		}
		schema.WriteInfo(next, schema.BasicInfo{Name: name, ID: stored.ID, ResourcePath: rp, Version: uuid.NewString()})
		if err := s.validate(k, next); err != nil {
			return err
		}
		return s.save(txn, record{seq: rec.seq, path: rp, info: next})
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Server) delete(k *apis.Kind, req *dynamicpb.Message) (proto.Message, error) {
	md := schema.Base().DeleteRequest
	rp := schema.PathField(req, schema.FieldResourcePath)
	version := req.Get(md.Fields().ByName(schema.FieldVersion)).String()
	if err := checkLabel(k, rp); err != nil {
		return nil, err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := s.load(txn, rp)
		if err != nil {
			return err
		}
		if stored := schema.ReadInfo(rec.info).Version; version != "" && version != stored {
			return status.Errorf(codes.Aborted, "version mismatch for %s: got %q, stored %q", rp, version, stored)
		}
		for _, key := range subtree(txn, rp) {
			if err := txn.Delete(key); err != nil {
				return status.Errorf(codes.Internal, "delete %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dynamicpb.NewMessage(schema.Base().Empty), nil
}

// checkLinks rejects links to missing objects and to other models.
func (s *Server) checkLinks(txn *badger.Txn, rp string, props protoreflect.Message) error {
	root := paths.Root(rp)
	for _, p := range linked.Paths(props) {
		if paths.Root(p) != root {
			return status.Errorf(codes.InvalidArgument, "link %s points outside of %s", p, root)
		}
		if !s.exists(txn, p) {
			return status.Errorf(codes.InvalidArgument, "linked object %s not found", p)
		}
	}
	return nil
}

func (s *Server) validate(k *apis.Kind, info protoreflect.Message) error {
	for _, v := range s.validators[k.Label] {
		if err := v(info); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	return nil
}

// uniqueID returns name if it is free in cp, otherwise the first free
// "<base>.N" with N >= 2, where base is name without a numeric suffix.
func (s *Server) uniqueID(txn *badger.Txn, cp, name string) string {
	if !s.exists(txn, paths.Join(cp, name)) {
		return name
	}
	base := name
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			base = name[:i]
		}
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s.%d", base, n)
		if !s.exists(txn, paths.Join(cp, id)) {
			return id
		}
	}
}

func checkLabel(k *apis.Kind, p string) error {
	if p == "" {
		return status.Error(codes.InvalidArgument, "empty path")
	}
	if got := paths.Label(p); got != k.Label {
		return status.Errorf(codes.InvalidArgument, "path %s is not in a %q collection", p, k.Label)
	}
	return nil
}

func defaultName(k *apis.Kind) string {
	if k.DefaultName != "" {
		return k.DefaultName
	}
	return k.Name
}
