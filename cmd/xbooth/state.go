package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/config"
	"github.com/urfave/cli/v2"
)

// The local state maps names chosen by the operator to base58 encoded
// private keys, so that commands can refer to keys and accounts by name.

func statePath() string {
	return filepath.Join(config.GetDatadir(), config.StateFilename)
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("get local state error: %w", err)
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("local state is corrupted: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath(), jsonString, 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

// newNamedKey generates a new key to be stored under name once the account
// at its address has been created.
func newNamedKey(name string) (solana.PrivateKey, error) {
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}
	state, err := getState()
	if err != nil {
		return nil, err
	}
	if _, ok := state[name]; ok {
		return nil, fmt.Errorf("name %s is already in use", name)
	}
	return solana.NewRandomPrivateKey()
}

func saveKey(name string, key solana.PrivateKey) error {
	return setState(map[string]string{name: key.String()})
}

// getKey returns the private key stored under name.
func getKey(name string) (solana.PrivateKey, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	encoded, ok := state[name]
	if !ok {
		return nil, fmt.Errorf("unknown key %s, create one with 'keygen'", name)
	}
	return solana.PrivateKeyFromBase58(encoded)
}

// getAddress resolves either a name of the local state or a base58 encoded
// address.
func getAddress(nameOrAddress string) (solana.PublicKey, error) {
	state, err := getState()
	if err != nil {
		return solana.PublicKey{}, err
	}
	if encoded, ok := state[nameOrAddress]; ok {
		key, err := solana.PrivateKeyFromBase58(encoded)
		if err != nil {
			return solana.PublicKey{}, err
		}
		return key.PublicKey(), nil
	}

	address, err := solana.PublicKeyFromBase58(nameOrAddress)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf(
			"%s is neither a known name nor a valid address", nameOrAddress,
		)
	}
	return address, nil
}

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print the configuration and the named keys of the local state",
	Action: configAction,
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	names := make(map[string]string, len(state))
	for name := range state {
		address, err := getAddress(name)
		if err != nil {
			return err
		}
		names[name] = address.String()
	}
	keys := make([]string, 0, len(names))
	for name := range names {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	fmt.Fprintln(ctx.App.Writer, "datadir: "+config.GetDatadir())
	fmt.Fprintln(ctx.App.Writer, "db_type: "+config.GetString(config.DBTypeKey))
	fmt.Fprintln(ctx.App.Writer, "program_id: "+config.GetProgramID().String())
	fmt.Fprintln(ctx.App.Writer, "exchange_rate: "+config.GetExchangeRate().String())
	for _, name := range keys {
		fmt.Fprintln(ctx.App.Writer, name+": "+names[name])
	}
	return nil
}
