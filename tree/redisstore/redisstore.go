/*
Package redisstore provides an implementation of tree.Store
that keeps tree snapshots in a redis DB.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/tree"
	"gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding snapshots into slices of
bytes and decoding them back to snapshots.
*/
type EncodeDecoder interface {
	Encode(*tree.Snapshot) ([]byte, error)
	Decode([]byte) (*tree.Snapshot, error)
}

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec EncodeDecoder
}

//New builds a tree.Store backed by a redis DB. Snapshots
//are stored under the given prefix followed by a colon and
//their name.
func New(rc *redis.Client, prefix string, encdec EncodeDecoder) tree.Store {
	return &redisStore{rc, prefix, encdec}
}

func (rs *redisStore) Save(ctx context.Context, name string, s *tree.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	data, err := rs.encdec.Encode(s)
	if err != nil {
		return fmt.Errorf("storing snapshot %q: encoding snapshot: %v", key, err)
	}
	_, err = rs.rc.Set(key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing snapshot %q in redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := rs.keyFor(name)
	data, err := rs.rc.Get(key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving snapshot %q: %v", key, err)
	}
	s, err := rs.encdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving snapshot %q: %v", key, err)
	}
	return s, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	_, err := rs.rc.Del(key).Result()
	if err != nil {
		return fmt.Errorf("deleting snapshot %q from redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(name string) string {
	if rs.prefix == "" {
		return name
	}
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
