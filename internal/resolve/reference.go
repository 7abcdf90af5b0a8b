// Package resolve turns the indirect references of a CloudflareDNSRecord spec into concrete
// values: config map and secret lookups, zone name to zone ID resolution and service IP
// discovery. All resolvers report an absent value as a nil pointer rather than an error so that
// callers can defer and retry instead of failing hard.
package resolve

import (
	"context"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	v1 "k8s.io/api/core/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// Value resolves the given value-or-reference within the given namespace. Literal values resolve
// to themselves. References read the named key out of a config map or secret; if the referenced
// object or key does not exist, nil is returned without an error.
func Value(
	ctx context.Context,
	ctrlClient client.Client,
	logger *zap.Logger,
	namespace string,
	value v1alpha1.ValueOrReference,
) (*string, error) {
	switch {
	case value.Value != nil:
		return value.Value, nil
	case value.From != nil:
		return reference(ctx, ctrlClient, logger, namespace, *value.From)
	default:
		return nil, nil
	}
}

func reference(
	ctx context.Context,
	ctrlClient client.Client,
	logger *zap.Logger,
	namespace string,
	ref v1alpha1.Reference,
) (*string, error) {
	switch {
	case ref.ConfigMap != nil:
		var configMap v1.ConfigMap
		name := types.NamespacedName{Name: ref.ConfigMap.Name, Namespace: namespace}
		if err := ctrlClient.Get(ctx, name, &configMap); err != nil {
			if apierrs.IsNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to query config map: %w", err)
		}
		if value, ok := configMap.Data[ref.ConfigMap.Key]; ok {
			return &value, nil
		}
		return nil, nil
	case ref.Secret != nil:
		var secret v1.Secret
		name := types.NamespacedName{Name: ref.Secret.Name, Namespace: namespace}
		if err := ctrlClient.Get(ctx, name, &secret); err != nil {
			if apierrs.IsNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to query secret: %w", err)
		}
		if value, ok := secret.Data[ref.Secret.Key]; ok {
			return decodeSecretValue(logger.With(zap.String("secret", name.String())), value), nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// decodeSecretValue interprets a secret payload as UTF-8, falling back to base64-encoded UTF-8.
// Payloads that are neither resolve to nil, i.e. an absent value.
func decodeSecretValue(logger *zap.Logger, data []byte) *string {
	if utf8.Valid(data) {
		value := string(data)
		return &value
	}
	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err == nil && utf8.Valid(decoded) {
		value := string(decoded)
		return &value
	}
	logger.Error("unable to decode secret value as utf8 or base64")
	return nil
}
