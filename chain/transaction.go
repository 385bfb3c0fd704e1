package chain

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zlib"

	"github.com/encoderlee/eosapi/crypto"
)

type TransactionHeader struct {
	Expiration       TimePointSec `json:"expiration"`
	RefBlockNum      uint16       `json:"ref_block_num"`
	RefBlockPrefix   uint32       `json:"ref_block_prefix"`
	MaxNetUsageWords Varuint32    `json:"max_net_usage_words"` // 1 word = 8 bytes
	MaxCPUUsageMs    uint8        `json:"max_cpu_usage_ms"`
	DelaySec         Varuint32    `json:"delay_sec"`
}

func (h *TransactionHeader) Pack(e *Encoder) error {
	if err := e.WriteTimePointSec(time.Time(h.Expiration)); err != nil {
		return err
	}
	if err := e.WriteUint16(h.RefBlockNum); err != nil {
		return err
	}
	if err := e.WriteUint32(h.RefBlockPrefix); err != nil {
		return err
	}
	if err := e.WriteVaruint32(uint32(h.MaxNetUsageWords)); err != nil {
		return err
	}
	if err := e.WriteUint8(h.MaxCPUUsageMs); err != nil {
		return err
	}
	return e.WriteVaruint32(uint32(h.DelaySec))
}

func (h *TransactionHeader) Unpack(d *Decoder) (err error) {
	if err = h.Expiration.Unpack(d); err != nil {
		return fmt.Errorf("expiration: %w", err)
	}
	if h.RefBlockNum, err = d.ReadUint16(); err != nil {
		return fmt.Errorf("ref_block_num: %w", err)
	}
	if h.RefBlockPrefix, err = d.ReadUint32(); err != nil {
		return fmt.Errorf("ref_block_prefix: %w", err)
	}
	v, err := d.ReadVaruint32()
	if err != nil {
		return fmt.Errorf("max_net_usage_words: %w", err)
	}
	h.MaxNetUsageWords = Varuint32(v)
	if h.MaxCPUUsageMs, err = d.ReadUint8(); err != nil {
		return fmt.Errorf("max_cpu_usage_ms: %w", err)
	}
	if v, err = d.ReadVaruint32(); err != nil {
		return fmt.Errorf("delay_sec: %w", err)
	}
	h.DelaySec = Varuint32(v)
	return nil
}

// Transaction is built unlinked; Link binds it to a reference block and a
// chain, after which it can be packed and signed. There is no internal
// locking.
type Transaction struct {
	TransactionHeader
	Actions []*Action `json:"actions"`

	ExpirationDelaySec uint32   `json:"-"`
	ChainID            string   `json:"-"`
	Signatures         []string `json:"signatures,omitempty"`

	// Clock is used by Link, time.Now when nil.
	Clock func() time.Time `json:"-"`
}

func NewTransaction(actions ...*Action) *Transaction {
	return &Transaction{
		Actions:            actions,
		ExpirationDelaySec: DefaultExpirationDelaySec,
		Signatures:         make([]string, 0),
	}
}

// Link sets the TaPoS fields from the given block id, the chain id and an
// expiration ExpirationDelaySec from now. Existing signatures are kept.
func (tx *Transaction) Link(blockID string, chainID string) error {
	id, err := decodeSHA256("block_id", blockID)
	if err != nil {
		return err
	}
	if _, err := decodeSHA256("chain_id", chainID); err != nil {
		return err
	}

	tx.RefBlockNum, tx.RefBlockPrefix = TaposInfo(id)
	tx.ChainID = chainID

	now := time.Now
	if tx.Clock != nil {
		now = tx.Clock
	}
	delay := time.Duration(tx.ExpirationDelaySec) * time.Second
	tx.Expiration = NewTimePointSec(now().UTC().Add(delay))
	return nil
}

// IsLinked reports whether the header carries an expiration.
func (tx *Transaction) IsLinked() bool {
	return !time.Time(tx.Expiration).IsZero()
}

// TaposInfo derives ref_block_num and ref_block_prefix from a block id.
func TaposInfo(id SHA256Type) (refBlockNum uint16, refBlockPrefix uint32) {
	hash0 := binary.LittleEndian.Uint64(id[0:8])
	hash1 := binary.LittleEndian.Uint64(id[8:16])
	refBlockNum = uint16(endianReverseU32(uint32(hash0)))
	refBlockPrefix = uint32(hash1)
	return
}

func endianReverseU32(x uint32) uint32 {
	return (x>>24)&0xff | ((x>>16)&0xff)<<8 | ((x>>8)&0xff)<<16 | (x&0xff)<<24
}

func decodeSHA256(field string, s string) (out SHA256Type, err error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, &CodecError{Field: field, Value: s, Err: ErrInvalidHex}
	}
	if len(raw) != TypeSize.SHA256Bytes {
		return out, truncated(field, TypeSize.SHA256Bytes, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func (tx *Transaction) Pack(e *Encoder) error {
	if !tx.IsLinked() {
		return ErrNotLinked
	}
	if err := tx.TransactionHeader.Pack(e); err != nil {
		return err
	}
	// context_free_actions
	if err := PackArray(e, []int8{}, (*Encoder).WriteInt8); err != nil {
		return err
	}
	for i, action := range tx.Actions {
		if action.BinArgs == nil {
			return &SerializationError{Index: i, Account: action.Account, Name: action.Name, Err: ErrMissingBinArgs}
		}
	}
	if err := e.WriteVaruint32(uint32(len(tx.Actions))); err != nil {
		return err
	}
	for i, action := range tx.Actions {
		if err := action.Pack(e); err != nil {
			return &SerializationError{Index: i, Account: action.Account, Name: action.Name, Err: err}
		}
	}
	// transaction_extensions
	return PackArray(e, []int8{}, (*Encoder).WriteInt8)
}

// Bytes returns the packed transaction, the packed_trx of push_transaction.
func (tx *Transaction) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := tx.Pack(NewEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ID is the sha256 of the packed transaction.
func (tx *Transaction) ID() (SHA256Type, error) {
	packed, err := tx.Bytes()
	if err != nil {
		return SHA256Type{}, err
	}
	return sha256.Sum256(packed), nil
}

// SigningDigest is sha256(chain_id || packed_trx || 32 zero bytes), the
// zero block standing for the empty context free data digest.
func (tx *Transaction) SigningDigest() (SHA256Type, error) {
	chainID, err := decodeSHA256("chain_id", tx.ChainID)
	if err != nil {
		return SHA256Type{}, err
	}
	packed, err := tx.Bytes()
	if err != nil {
		return SHA256Type{}, err
	}
	h := sha256.New()
	h.Write(chainID[:])
	h.Write(packed)
	h.Write(make([]byte, TypeSize.SHA256Bytes))
	var out SHA256Type
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Sign appends one signature by key over the current packed bytes.
func (tx *Transaction) Sign(key *crypto.PrivateKey) error {
	digest, err := tx.SigningDigest()
	if err != nil {
		return err
	}
	sig, err := key.Sign(digest[:])
	if err != nil {
		return err
	}
	text, err := sig.Text()
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, text)
	return nil
}

// AddSignature appends sig unless the same text is already present.
func (tx *Transaction) AddSignature(sig string) bool {
	for _, s := range tx.Signatures {
		if s == sig {
			return false
		}
	}
	tx.Signatures = append(tx.Signatures, sig)
	return true
}

func (tx *Transaction) String() string {
	out, _ := json.Marshal(tx)
	return string(out)
}

// UnpackTransaction decodes packed_trx bytes. Context free actions and
// extensions must be empty.
func UnpackTransaction(data []byte) (*Transaction, error) {
	d := NewDecoder(data)
	d.StripDots = true
	tx := NewTransaction()
	if err := tx.Unpack(d); err != nil {
		return nil, err
	}
	if d.Remaining() > 0 {
		return nil, fmt.Errorf("%d trailing bytes after transaction", d.Remaining())
	}
	return tx, nil
}

func (tx *Transaction) Unpack(d *Decoder) error {
	if err := tx.TransactionHeader.Unpack(d); err != nil {
		return err
	}
	n, err := d.ReadVaruint32()
	if err != nil {
		return fmt.Errorf("context_free_actions: %w", err)
	}
	if n != 0 {
		return fmt.Errorf("context_free_actions: %d entries not supported", n)
	}
	tx.Actions, err = UnpackArray(d, func(d *Decoder) (*Action, error) {
		a := &Action{}
		return a, a.Unpack(d)
	})
	if err != nil {
		return fmt.Errorf("actions: %w", err)
	}
	if n, err = d.ReadVaruint32(); err != nil {
		return fmt.Errorf("transaction_extensions: %w", err)
	}
	if n != 0 {
		return fmt.Errorf("transaction_extensions: %d entries not supported", n)
	}
	return nil
}

type PackedTransaction struct {
	Signatures            []string        `json:"signatures"`
	Compression           CompressionType `json:"compression"`
	PackedContextFreeData string          `json:"packed_context_free_data"`
	PackedTrx             string          `json:"packed_trx"`
}

// PackedTransaction builds the push_transaction body.
func (tx *Transaction) PackedTransaction(compression CompressionType) (*PackedTransaction, error) {
	packedTrx, err := tx.Bytes()
	if err != nil {
		return nil, err
	}
	switch compression {
	case None:
	case Zlib:
		if packedTrx, err = zlibCompress(packedTrx); err != nil {
			return nil, err
		}
	default:
		return nil, &CodecError{Field: "compression", Value: compression.String(), Err: ErrUnknownCompression}
	}
	signatures := make([]string, len(tx.Signatures))
	copy(signatures, tx.Signatures)
	return &PackedTransaction{
		Signatures:            signatures,
		Compression:           compression,
		PackedContextFreeData: "",
		PackedTrx:             hex.EncodeToString(packedTrx),
	}, nil
}

// Transaction inflates and decodes packed_trx, keeping the signatures.
func (p *PackedTransaction) Transaction() (*Transaction, error) {
	packedTrx, err := hex.DecodeString(p.PackedTrx)
	if err != nil {
		return nil, &CodecError{Field: "packed_trx", Err: ErrInvalidHex}
	}
	if p.Compression == Zlib {
		if packedTrx, err = zlibDecompress(packedTrx); err != nil {
			return nil, err
		}
	}
	tx, err := UnpackTransaction(packedTrx)
	if err != nil {
		return nil, err
	}
	tx.Signatures = append(tx.Signatures, p.Signatures...)
	return tx, nil
}

func zlibCompress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	w := zlib.NewWriter(&buffer)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func zlibDecompress(packedTrx []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(packedTrx))
	if err != nil {
		return nil, fmt.Errorf("could not inflate packed_trx: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}
