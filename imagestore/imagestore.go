// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package imagestore persists memory images in a bbolt database, keyed by the
// label of the memory they were taken from or are meant for.
//
package imagestore

import (
	"encoding/binary"
	"time"

	"github.com/db47h/evsim"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const bucketImages = "images"

// ErrNotFound is returned by Load when no image is stored under a label.
//
var ErrNotFound = errors.New("image not found")

// Store is a database of memory images.
//
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
//
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketImages))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, path)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
//
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores d under label, replacing any previous image.
//
func (s *Store) Save(label string, d *evsim.DataField) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketImages))
		return b.Put([]byte(label), marshal(d))
	})
}

// Load returns the image stored under label.
//
func (s *Store) Load(label string) (*evsim.DataField, error) {
	var d *evsim.DataField
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketImages)).Get([]byte(label))
		if v == nil {
			return errors.Wrap(ErrNotFound, label)
		}
		var err error
		d, err = unmarshal(v)
		return errors.Wrap(err, label)
	})
	return d, err
}

// Labels returns the labels of all stored images, in lexical order.
//
func (s *Store) Labels() ([]string, error) {
	var ls []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketImages)).ForEach(func(k, _ []byte) error {
			ls = append(ls, string(k))
			return nil
		})
	})
	return ls, err
}

// Delete removes the image stored under label. Deleting a missing image is
// not an error.
//
func (s *Store) Delete(label string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketImages)).Delete([]byte(label))
	})
}

// An image is the data width in one byte followed by the words in little
// endian order.
func marshal(d *evsim.DataField) []byte {
	ws := d.Words()
	buf := make([]byte, 1+8*len(ws))
	buf[0] = byte(d.Bits())
	for i, w := range ws {
		binary.LittleEndian.PutUint64(buf[1+8*i:], w)
	}
	return buf
}

func unmarshal(buf []byte) (*evsim.DataField, error) {
	if len(buf) == 0 || (len(buf)-1)%8 != 0 {
		return nil, errors.Errorf("corrupted image: %d bytes", len(buf))
	}
	bits := uint(buf[0])
	if bits < 1 || bits > 64 {
		return nil, errors.Errorf("corrupted image: invalid data width %d", bits)
	}
	n := (len(buf) - 1) / 8
	d := evsim.NewDataField(n, bits)
	for i := 0; i < n; i++ {
		d.Set(uint64(i), binary.LittleEndian.Uint64(buf[1+8*i:]))
	}
	return d, nil
}
