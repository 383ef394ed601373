package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/sqldataset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/sapling/feature"
	featurejson "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/feature/yaml"
	"github.com/pbanos/sapling/tree"
	treejson "github.com/pbanos/sapling/tree/json"
	"github.com/pbanos/sapling/tree/redisstore"
	"github.com/spf13/pflag"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

/*
setConfig holds the flags shared by the commands reading or writing
sets: the metadata describing the columns, the label column and where
the rows live in databases.
*/
type setConfig struct {
	metadataInput  string
	label          string
	table          string
	collection     string
	undefinedValue string
	metadata       *feature.Metadata
}

func (sc *setConfig) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&(sc.metadataInput), "metadata", "m", "", "path to a YML (.yml, .yaml) or JSON (.json) file with metadata describing the columns of the input set")
	flags.StringVarP(&(sc.label), "label", "l", "", "name of the column holding the labels (defaults to the label in the metadata)")
	flags.StringVar(&(sc.table), "table", "samples", "name of the table holding the set on SQL databases")
	flags.StringVar(&(sc.collection), "collection", "samples", "name of the collection holding the set on MongoDB databases")
	flags.StringVarP(&(sc.undefinedValue), "undefined-value", "u", csv.DefaultUndefinedValue, "value standing for undefined values in CSV sets and interactive input")
}

// loadMetadata reads the metadata if a file was given, and takes the label from it if none was set
func (sc *setConfig) loadMetadata() error {
	if sc.metadataInput == "" {
		return nil
	}
	var err error
	switch strings.ToLower(filepath.Ext(sc.metadataInput)) {
	case ".json":
		sc.metadata, err = featurejson.ReadMetadataFromFile(sc.metadataInput)
	default:
		sc.metadata, err = yaml.ReadMetadataFromFile(sc.metadataInput)
	}
	if err != nil {
		return err
	}
	if sc.label == "" {
		sc.label = sc.metadata.Label
	}
	return nil
}

/*
readSet reads a set from the given input: a PostgreSQL connection URL, a
MongoDB connection URL, an SQLite3 file (.db) or a CSV file, STDIN if
empty. When metadata was loaded, the set is restricted to its columns, in
its order.
*/
func (sc *setConfig) readSet(ctx context.Context, input string, labeled bool) (*dataset.Set, error) {
	label := ""
	if labeled {
		label = sc.label
	}
	var s *dataset.Set
	var err error
	switch {
	case isPostgreSQL(input):
		var a sqldataset.Adapter
		a, err = pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		defer a.Close()
		s, err = sqldataset.Read(ctx, a, sc.table, label)
	case isMongoDB(input):
		if sc.metadata == nil {
			return nil, fmt.Errorf("reading from MongoDB requires metadata naming the columns")
		}
		var session *mgo.Session
		session, err = mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		s, err = mongodataset.Read(ctx, session, sc.collection, sc.metadata.Names(), label)
	case isSQLite3(input):
		var a sqldataset.Adapter
		a, err = sqlite3adapter.New(input)
		if err != nil {
			return nil, err
		}
		defer a.Close()
		s, err = sqldataset.Read(ctx, a, sc.table, label)
	default:
		s, err = csv.ReadSetFromFilePath(input, csv.ReadOptions{
			Label:          label,
			UndefinedValue: sc.undefinedValue,
			Types:          sc.declaredTypes(),
		})
	}
	if err != nil {
		return nil, err
	}
	if sc.metadata != nil {
		s, err = s.Select(sc.metadata.Names())
	}
	return s, err
}

/*
writeSet writes a set to the given output: a PostgreSQL connection URL, a
MongoDB connection URL, an SQLite3 file (.db) or a CSV file, STDOUT if
empty.
*/
func (sc *setConfig) writeSet(ctx context.Context, output string, s *dataset.Set) error {
	switch {
	case isPostgreSQL(output):
		a, err := pgadapter.New(output)
		if err != nil {
			return err
		}
		defer a.Close()
		return sqldataset.Write(ctx, a, sc.table, s, sc.label)
	case isMongoDB(output):
		session, err := mgo.Dial(output)
		if err != nil {
			return fmt.Errorf("connecting to MongoDB: %v", err)
		}
		defer session.Close()
		return mongodataset.Write(ctx, session, sc.collection, s, sc.label)
	case isSQLite3(output):
		a, err := sqlite3adapter.New(output)
		if err != nil {
			return err
		}
		defer a.Close()
		return sqldataset.Write(ctx, a, sc.table, s, sc.label)
	}
	f := os.Stdout
	if output != "" {
		var err error
		f, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %v", output, err)
		}
		defer f.Close()
	}
	return csv.WriteSet(f, s, sc.label, sc.undefinedValue)
}

func (sc *setConfig) declaredTypes() map[string]feature.Type {
	if sc.metadata == nil {
		return nil
	}
	types := make(map[string]feature.Type, len(sc.metadata.Columns))
	for _, c := range sc.metadata.Columns {
		types[c.Name] = c.Type
	}
	return types
}

func isPostgreSQL(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

func isMongoDB(location string) bool {
	return strings.HasPrefix(location, "mongodb://")
}

func isSQLite3(location string) bool {
	return strings.HasSuffix(location, ".db")
}

/*
treeConfig holds the flags shared by the commands loading or storing
trees: a JSON file, or a model name on a redis store.
*/
type treeConfig struct {
	treeFile    string
	model       string
	redisAddr   string
	redisPrefix string
	redisDB     int
}

func (tc *treeConfig) addFlags(flags *pflag.FlagSet, fileUsage string) {
	flags.StringVarP(&(tc.treeFile), "tree", "t", "", fileUsage)
	flags.StringVarP(&(tc.model), "model", "n", "", "name of the tree on the redis store")
	flags.StringVar(&(tc.redisAddr), "redis-addr", "", "address (host:port) of the redis server storing trees")
	flags.StringVar(&(tc.redisPrefix), "redis-prefix", "sapling", "prefix for the keys of the trees on the redis store")
	flags.IntVar(&(tc.redisDB), "redis-db", 0, "number of the redis database storing trees")
}

func (tc *treeConfig) useStore() bool {
	return tc.redisAddr != "" && tc.model != ""
}

func (tc *treeConfig) validateSource() error {
	if tc.treeFile == "" && !tc.useStore() {
		return fmt.Errorf("either the tree flag or the model and redis-addr flags must be set")
	}
	return nil
}

func (tc *treeConfig) store() tree.Store {
	rc := redis.NewClient(&redis.Options{Addr: tc.redisAddr, DB: tc.redisDB})
	return redisstore.New(rc, tc.redisPrefix, treejson.New())
}

// loadClassifier restores the classifier from the tree file or, if not set, from the store
func (tc *treeConfig) loadClassifier(ctx context.Context, opts ...sapling.Option) (*sapling.Classifier, error) {
	if tc.treeFile != "" {
		t, err := treejson.ReadJSONTreeFromFile(tc.treeFile)
		if err != nil {
			return nil, err
		}
		return sapling.Restore(t.Snapshot(), opts...)
	}
	store := tc.store()
	defer store.Close(ctx)
	s, err := store.Load(ctx, tc.model)
	if err != nil {
		return nil, fmt.Errorf("loading tree %s: %v", tc.model, err)
	}
	if s == nil {
		return nil, fmt.Errorf("no tree named %s on the store", tc.model)
	}
	return sapling.Restore(s, opts...)
}

// saveTree writes the tree to the tree file or STDOUT, and to the store if configured
func (tc *treeConfig) saveTree(ctx context.Context, t *tree.Tree) error {
	if tc.treeFile != "" || !tc.useStore() {
		var err error
		if tc.treeFile == "" {
			err = treejson.WriteJSONTree(t, os.Stdout)
		} else {
			err = treejson.WriteJSONTreeToFile(t, tc.treeFile)
		}
		if err != nil {
			return err
		}
	}
	if !tc.useStore() {
		return nil
	}
	store := tc.store()
	defer store.Close(ctx)
	err := store.Save(ctx, tc.model, t.Snapshot())
	if err != nil {
		return fmt.Errorf("saving tree %s: %v", tc.model, err)
	}
	return nil
}

/*
alignSet returns the set with the columns of the tree, in the tree order.
Sets for trees with unnamed columns are returned as they are.
*/
func alignSet(s *dataset.Set, t *tree.Tree) (*dataset.Set, error) {
	names := t.ColumnNames()
	for _, name := range names {
		if name == "" {
			return s, nil
		}
	}
	return s.Select(names)
}
