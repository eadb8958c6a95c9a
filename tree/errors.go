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

package tree

import "errors"

var (
	ErrUnsupported   = errors.New("acp(tree): not supported by the server version")
	ErrNotStored     = errors.New("acp(tree): object is not stored")
	ErrAlreadyStored = errors.New("acp(tree): object is already stored")
	ErrUnstoredLink  = errors.New("acp(tree): cannot link to unstored objects")
	ErrForeignLink   = errors.New("acp(tree): object contains links to objects outside of the target model")
	ErrWrongKind     = errors.New("acp(tree): object of wrong kind")
	ErrUnknownKind   = errors.New("acp(tree): unknown kind")
	ErrUnknownField  = errors.New("acp(tree): unknown field")
	ErrNoCollection  = errors.New("acp(tree): no such child collection")
	ErrReadOnly      = errors.New("acp(tree): read-only")
	ErrNotFound      = errors.New("acp(tree): not found")
	ErrDuplicateID   = errors.New("acp(tree): duplicate ID in collection")
	ErrNotInList     = errors.New("acp(tree): object not in list")
	ErrOutOfRange    = errors.New("acp(tree): index out of range")
)
