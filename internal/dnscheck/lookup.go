package dnscheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// DefaultResolver is the resolver address that DNS queries are issued against if none is
// configured explicitly.
const DefaultResolver = "1.1.1.1:53"

// ErrUnsupportedType is returned when a record type cannot be verified via a DNS query.
var ErrUnsupportedType = errors.New("record type cannot be resolved via dns query")

// LookupFunc performs a DNS query for the given name and record type against the given resolver
// address and returns the stringified answer values.
type LookupFunc func(
	ctx context.Context, name string, recordType v1alpha1.RecordType, resolver string,
) ([]string, error)

var queryTypes = map[v1alpha1.RecordType]uint16{
	v1alpha1.RecordTypeA:     dns.TypeA,
	v1alpha1.RecordTypeAAAA:  dns.TypeAAAA,
	v1alpha1.RecordTypeCNAME: dns.TypeCNAME,
	v1alpha1.RecordTypeMX:    dns.TypeMX,
	v1alpha1.RecordTypeTXT:   dns.TypeTXT,
	v1alpha1.RecordTypeNS:    dns.TypeNS,
}

// Lookup queries the given resolver for the given name and record type. The answer values are
// stringified such that they can be compared against a record's expected content: addresses for
// A/AAAA, target names for CNAME/NS, "preference exchange" for MX and the decoded text for TXT.
// Record types outside this set return ErrUnsupportedType.
func Lookup(
	ctx context.Context, name string, recordType v1alpha1.RecordType, resolver string,
) ([]string, error) {
	queryType, ok := queryTypes[recordType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, recordType)
	}

	message := new(dns.Msg)
	message.SetQuestion(dns.Fqdn(name), queryType)
	message.RecursionDesired = true

	client := new(dns.Client)
	response, _, err := client.ExchangeContext(ctx, message, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolver %q: %w", resolver, err)
	}

	values := make([]string, 0, len(response.Answer))
	for _, answer := range response.Answer {
		switch record := answer.(type) {
		case *dns.A:
			values = append(values, record.A.String())
		case *dns.AAAA:
			values = append(values, record.AAAA.String())
		case *dns.CNAME:
			values = append(values, strings.TrimSuffix(record.Target, "."))
		case *dns.NS:
			values = append(values, strings.TrimSuffix(record.Ns, "."))
		case *dns.MX:
			values = append(values, fmt.Sprintf(
				"%d %s", record.Preference, strings.TrimSuffix(record.Mx, "."),
			))
		case *dns.TXT:
			values = append(values, strings.Join(record.Txt, ""))
		}
	}
	return values, nil
}
