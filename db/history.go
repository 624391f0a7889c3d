package db

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Entry records one submitted transaction. Only public chain data is
// stored; keys never touch the database.
type Entry struct {
	Hash     string `json:"hash"`
	From     string `json:"from"`
	To       string `json:"to"`
	ValueWei string `json:"value_wei"`
	Nonce    uint64 `json:"nonce"`
	Time     int64  `json:"time"`
	// Confirmed reports whether a receipt was observed before the record
	// was written. Status is only meaningful when it is true: a mined
	// transaction with status 0 failed, it is not pending.
	Confirmed bool   `json:"confirmed"`
	Status    uint64 `json:"status"`
}

// HistoryStore persists submitted transactions in LevelDB. It is a log of
// what was sent, not a nonce cache: nonces are always fetched live.
type HistoryStore struct {
	db *leveldb.DB
}

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{ErrorIfMissing: false})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Append stores a new entry under the next sequence number.
func (s *HistoryStore) Append(entry Entry) error {
	seq, err := s.nextSeq()
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put(seqKey(seq), data)
	batch.Put([]byte("seq"), encodeSeq(seq))
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// List returns all entries in submission order.
func (s *HistoryStore) List() ([]Entry, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte("tx_")), nil)
	defer iter.Release()

	var entries []Entry
	for iter.Next() {
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, fmt.Errorf("corrupt history entry %s: %w", iter.Key(), err)
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to scan history: %w", err)
	}
	return entries, nil
}

// Close shuts down the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) nextSeq() (uint64, error) {
	data, err := s.db.Get([]byte("seq"), nil)
	if err == leveldb.ErrNotFound {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read history sequence: %w", err)
	}
	return binary.BigEndian.Uint64(data) + 1, nil
}

func seqKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("tx_%020d", seq))
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}
