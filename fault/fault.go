// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecipientError GenericError

// common errors - keep in alphabetic order
var (
	AddressesNotSorted    = InvalidError("addresses not sorted")
	AlreadyInitialised    = ExistsError("already initialised")
	AlreadyMinted         = ExistsError("already minted")
	DatabaseIsNotSet      = ProcessError("database is not set")
	IncompleteBatch       = InvalidError("previous batch is incomplete")
	InvalidAddresses      = InvalidError("invalid addresses")
	InvalidCapacity       = InvalidError("invalid segment capacity")
	InvalidConfiguration  = InvalidError("invalid configuration")
	InvalidCount          = InvalidError("invalid count")
	InvalidCursor         = InvalidError("invalid cursor")
	InvalidPolicy         = InvalidError("invalid recipient policy")
	InvalidRecipient      = RecipientError("invalid recipient")
	InvalidState          = InvalidError("invalid state")
	InvalidStructPointer  = InvalidError("invalid struct pointer")
	MissingSegment        = NotFoundError("missing segment")
	NotAddress            = InvalidError("not an address")
	NotAuthorised         = PermissionError("not authorised")
	NotBalancePack        = InvalidError("not a balance pack")
	NotEventPack          = InvalidError("not an event pack")
	NotInitialised        = ProcessError("not initialised")
	NotMinted             = NotFoundError("not minted")
	NotOverridePack       = InvalidError("not an override pack")
	NotSegmentHandle      = InvalidError("not a segment handle")
	TransactionInUse      = ProcessError("transaction already in use")
	TransactionNotStarted = ProcessError("transaction not started")
	UnsafeRecipient       = RecipientError("unsafe recipient")
	WrongFrom             = PermissionError("wrong from")
	ZeroAddress           = InvalidError("zero address")
	ZeroId                = InvalidError("zero id")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecipientError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecipient(e error) bool  { _, ok := e.(RecipientError); return ok }
