// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xprops/blob/main/LICENSE.

package xprops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Note: Etcd API ver was 3.5 at the time this code was written.
// API ref: https://etcd.io/docs/v3.5/learning/api/ .

const (
	etcdDefaultEndpoint = "127.0.0.1:2379"

	// etcdEndpointsEnvName defines an environment variable name which sets
	// the Etcd endpoints, comma separated.
	etcdEndpointsEnvName = "ETCD_ENDPOINTS"

	// etcdKeySeparator splits the hierarchy of an etcd key.
	etcdKeySeparator = "/"
)

const (
	// RemoteValueJSON indicates that content under a key is in JSON format.
	RemoteValueJSON = "json"
	// RemoteValueYAML indicates that content under a key is in YAML format.
	RemoteValueYAML = "yaml"
	// RemoteValuePlain indicates that content under a key is plain text.
	RemoteValuePlain = "plain"
)

// EtcdSource is a configuration source reading key(s) from etcd.
//
// With RemoteValuePlain format (the default), each key is applied as an untyped
// property, named after the key: "/" becomes the hierarchy separator
// ("app/db/port" => "app.db.port"). If the key is a prefix, the prefix is
// stripped from the property names.
//
// With RemoteValueJSON / RemoteValueYAML formats, each key's value is a
// typed configuration map, applied like a structured file.
type EtcdSource struct {
	key          string              // the key to load
	valueFormat  string              // value format, one of RemoteValue* constants
	clientCfg    clientv3.Config     // client config
	clientOpOpts []clientv3.OpOption // client operation options
	withPrefix   bool                // whether key is a prefix
	ctx          context.Context     // request context
}

// NewEtcdSource instantiates a new EtcdSource object that reads
// configuration from etcd.
func NewEtcdSource(key string, opts ...EtcdSourceOption) EtcdSource {
	src := EtcdSource{
		key:         key,
		valueFormat: RemoteValuePlain,
		ctx:         context.Background(),
		clientCfg:   clientv3.Config{DialTimeout: 10 * time.Second},
	}

	// apply options, if any.
	for _, opt := range opts {
		opt(&src)
	}
	if src.clientCfg.Endpoints == nil {
		src.clientCfg.Endpoints = getDefaultEtcdEndpoints()
	}

	return src
}

// ApplyConfiguration reads the key(s) from etcd and applies them.
// An unreachable etcd, as well as an undecodable value, is reported as an error.
func (src EtcdSource) ApplyConfiguration(
	_ LoaderOptions,
	props *Properties,
	onError ErrorHandler,
) (didApply, didError bool) {
	props.logDebug("loading configuration from etcd", "key", src.key, "format", src.valueFormat)
	kvPairs, err := src.fetch()
	if err != nil {
		onError(fmt.Sprintf("Configuration from etcd key '%s' was not loaded: %s.", src.key, err), err)

		return false, true
	}

	if src.valueFormat == RemoteValuePlain {
		configMap := make(map[string]any, len(kvPairs))
		for _, kvPair := range kvPairs {
			configMap[src.propertyName(string(kvPair.Key))] = string(bytes.TrimSpace(kvPair.Value))
		}

		return applyUntypedConfigMap(props, configMap, fmt.Sprintf("etcd key '%s'", src.key), strings.ToLower, onError)
	}

	for _, kvPair := range kvPairs {
		configMap, err := decodeRemoteValue(kvPair.Value, src.valueFormat)
		if err == nil {
			err = props.LoadFromMap(configMap, false)
		}
		if err != nil {
			onError(
				fmt.Sprintf("Configuration from etcd key '%s' is not a valid %s value: %s.", kvPair.Key, src.valueFormat, err),
				err,
			)

			return false, true
		}
		didApply = true
	}

	return didApply, false
}

// fetch retrieves key(s) by a simple client call.
func (src EtcdSource) fetch() ([]*mvccpb.KeyValue, error) {
	cli, err := clientv3.New(src.clientCfg)
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	resp, err := cli.KV.Get(src.ctx, src.key, src.clientOpOpts...)
	if err != nil {
		return nil, err
	}

	return resp.Kvs, nil
}

// propertyName translates an etcd key into a property name.
func (src EtcdSource) propertyName(key string) string {
	if src.withPrefix && key != src.key {
		key = strings.TrimPrefix(key, src.key)
	}
	key = strings.Trim(key, etcdKeySeparator)

	return strings.ReplaceAll(key, etcdKeySeparator, Separator)
}

// decodeRemoteValue returns configuration map for a key's value, according to format.
func decodeRemoteValue(value []byte, format string) (map[string]any, error) {
	var (
		decoded any
		err     error
	)
	if format == RemoteValueJSON {
		decoded, err = decodeJSON(value, false)
	} else {
		decoded, err = decodeYAML(value)
	}
	if err != nil {
		return nil, err
	}

	return asConfigMap(decoded)
}

// getDefaultEtcdEndpoints tries to get etcd endpoints from ENV.
// It defaults on localhost address.
func getDefaultEtcdEndpoints() []string {
	endpoints := []string{etcdDefaultEndpoint}

	// try to get from env variables
	if eps := os.Getenv(etcdEndpointsEnvName); eps != "" {
		endpoints = strings.Split(eps, ",")
	}

	return endpoints
}

// EtcdSourceOption defines optional function for configuring
// an etcd configuration source.
type EtcdSourceOption func(*EtcdSource)

// EtcdSourceWithEndpoints sets the etcd host(s) for the client.
// By default, is set to "127.0.0.1:2379".
// Etcd hosts can also be set through ETCD_ENDPOINTS ENV
// (comma separated, if there is more than 1 ep).
func EtcdSourceWithEndpoints(endpoints []string) EtcdSourceOption {
	return func(src *EtcdSource) {
		src.clientCfg.Endpoints = endpoints
	}
}

// EtcdSourceWithPrefix sets the WithPrefix() option on etcd client.
// The key will be treated as a prefix, and thus all the keys
// having that prefix will be read.
func EtcdSourceWithPrefix() EtcdSourceOption {
	return func(src *EtcdSource) {
		src.clientOpOpts = []clientv3.OpOption{clientv3.WithPrefix()}
		src.withPrefix = true
	}
}

// EtcdSourceWithContext sets request's context.
// By default, a context.Background() is used.
func EtcdSourceWithContext(ctx context.Context) EtcdSourceOption {
	return func(src *EtcdSource) {
		src.ctx = ctx
		src.clientCfg.Context = ctx
	}
}

// EtcdSourceWithAuth sets the authentication username and password.
func EtcdSourceWithAuth(username, pwd string) EtcdSourceOption {
	return func(src *EtcdSource) {
		src.clientCfg.Username = username
		src.clientCfg.Password = pwd
	}
}

// EtcdSourceWithValueFormat sets the value format for a key.
//
// If is set to RemoteValueJSON, the key's value will be treated as JSON.
//
// If is set to RemoteValueYAML, the key's value will be treated as YAML.
//
// If is set to RemoteValuePlain, the key's value will be treated as an untyped property value.
//
// By default, is set to RemoteValuePlain.
func EtcdSourceWithValueFormat(valueFormat string) EtcdSourceOption {
	return func(src *EtcdSource) {
		if valueFormat == RemoteValueJSON ||
			valueFormat == RemoteValueYAML ||
			valueFormat == RemoteValuePlain {
			src.valueFormat = valueFormat
		}
	}
}
