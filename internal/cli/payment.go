package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/pix"
)

// ErrInvalidInput marks bad flag or file values.
var ErrInvalidInput = errors.New("invalid input")

// paymentFile is the YAML shape accepted by --file. Flag names match the keys
// where they differ only in spelling.
type paymentFile struct {
	KeyKind     string `yaml:"key_kind"`
	Key         string `yaml:"key"`
	SingleUse   bool   `yaml:"single_use"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Beneficiary string `yaml:"beneficiary"`
	City        string `yaml:"city"`
	Identifier  string `yaml:"identifier"`
	FieldOrder  string `yaml:"field_order"`
}

type paymentFlags struct {
	paymentFile
	file       string
	randomTxID bool
}

func (f *paymentFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.KeyKind, "kind", "", "key kind: "+strings.Join(pix.KeyKinds(), ", "))
	fs.StringVar(&f.Key, "key", "", "receiver PIX key")
	fs.BoolVar(&f.SingleUse, "single-use", false, "mark the payload as valid for a single payment")
	fs.StringVar(&f.Description, "description", "", "free text shown to the payer")
	fs.StringVar(&f.Amount, "amount", "", "amount in BRL, e.g. 10.50 (default 0.01)")
	fs.StringVar(&f.Beneficiary, "name", "", "beneficiary name")
	fs.StringVar(&f.City, "city", "", "beneficiary city")
	fs.StringVar(&f.Identifier, "identifier", "", `transaction identifier (default "***")`)
	fs.BoolVar(&f.randomTxID, "random-txid", false, "use a random transaction identifier")
	fs.StringVar(&f.FieldOrder, "order", "sorted", "field order: sorted or insertion")
	fs.StringVarP(&f.file, "file", "f", "", "YAML file describing the payment")
	cmd.MarkFlagsMutuallyExclusive("identifier", "random-txid")
}

// resolve merges the file, if any, with the flags the user set explicitly.
func (f *paymentFlags) resolve(cmd *cobra.Command) (paymentFile, error) {
	if f.file == "" {
		return f.paymentFile, nil
	}

	data, err := os.ReadFile(f.file)
	if err != nil {
		return paymentFile{}, fmt.Errorf("read payment file: %w", err)
	}
	var out paymentFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		return paymentFile{}, errors.Join(ErrInvalidInput, fmt.Errorf("parse payment file %s: %w", f.file, err))
	}

	fs := cmd.Flags()
	for name, apply := range map[string]func(){
		"kind":        func() { out.KeyKind = f.KeyKind },
		"key":         func() { out.Key = f.Key },
		"single-use":  func() { out.SingleUse = f.SingleUse },
		"description": func() { out.Description = f.Description },
		"amount":      func() { out.Amount = f.Amount },
		"name":        func() { out.Beneficiary = f.Beneficiary },
		"city":        func() { out.City = f.City },
		"identifier":  func() { out.Identifier = f.Identifier },
		"order":       func() { out.FieldOrder = f.FieldOrder },
	} {
		if fs.Changed(name) {
			apply()
		}
	}
	return out, nil
}

func (f *paymentFlags) generator(cmd *cobra.Command, extra ...pix.Option) (*pix.Generator, error) {
	in, err := f.resolve(cmd)
	if err != nil {
		return nil, err
	}

	kind, err := pix.ParseKeyKind(in.KeyKind)
	if err != nil {
		return nil, err
	}
	order, err := emv.ParseOrder(in.FieldOrder)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	opts := []pix.Option{pix.WithFieldOrder(order), pix.WithIdentifier(in.Identifier)}
	if f.randomTxID {
		opts = append(opts, pix.WithIdentifier(randomTxID()))
	}
	if in.Amount != "" {
		amount, err := decimal.NewFromString(in.Amount)
		if err != nil {
			return nil, errors.Join(ErrInvalidInput, pix.ErrInvalidAmount, fmt.Errorf("amount %q is not a number", in.Amount))
		}
		opts = append(opts, pix.WithAmount(amount))
	}
	opts = append(opts, extra...)

	return pix.New(pix.Payment{
		KeyKind:     kind,
		Key:         in.Key,
		SingleUse:   in.SingleUse,
		Description: in.Description,
		Beneficiary: in.Beneficiary,
		City:        in.City,
	}, opts...)
}

// randomTxID returns 32 hex characters, within the 36-character txid limit.
func randomTxID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
