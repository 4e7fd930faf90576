package catalog

import (
	"github.com/quakepy/qcat/pkg/compact"
)

// ToCompact flattens the catalog into its compact columnar snapshot.
// Without explicit columns the standard set is used. The snapshot is
// independent: later mutation of the catalog does not reach it.
func (c *Catalog) ToCompact(columns ...string) (*compact.Catalog, error) {
	cc := compact.New()
	if err := cc.Update(c.Root, columns...); err != nil {
		return nil, err
	}
	return cc, nil
}
