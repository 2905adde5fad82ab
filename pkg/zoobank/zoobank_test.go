package zoobank

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLSID(t *testing.T) {
	tests := []struct {
		name     string
		lsid     string
		wantKind LSIDKind
		wantUUID string
		wantErr  bool
	}{
		{
			name:     "act",
			lsid:     "urn:lsid:zoobank.org:act:8BDC0735-FEA4-4298-83FA-D04F67C3FBEC",
			wantKind: KindAct,
			wantUUID: "8BDC0735-FEA4-4298-83FA-D04F67C3FBEC",
		},
		{
			name:     "publication",
			lsid:     "urn:lsid:zoobank.org:pub:427D7953-E8FC-41E8-BEA7-8AE644E6DE77",
			wantKind: KindPublication,
			wantUUID: "427D7953-E8FC-41E8-BEA7-8AE644E6DE77",
		},
		{name: "wrong authority", lsid: "urn:lsid:ipni.org:names:12345-1", wantErr: true},
		{name: "unknown kind", lsid: "urn:lsid:zoobank.org:author:ABC", wantErr: true},
		{name: "empty uuid", lsid: "urn:lsid:zoobank.org:act:", wantErr: true},
		{name: "not an lsid", lsid: "8BDC0735-FEA4-4298-83FA-D04F67C3FBEC", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, uuid, err := ParseLSID(tt.lsid)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadLSID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantUUID, uuid)
		})
	}
}

func TestResolveAct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/NomenclaturalActs.json/8BDC0735-FEA4-4298-83FA-D04F67C3FBEC", r.URL.Path)
		fmt.Fprint(w, `[{
			"protonymuuid": "8BDC0735-FEA4-4298-83FA-D04F67C3FBEC",
			"namestring": "major",
			"rankgroup": "Species",
			"cleanprotonym": "Parus major Linnaeus, 1758"
		}]`)
	}))
	defer srv.Close()

	c := New(WithEndpoint(srv.URL))
	act, err := c.ResolveAct(context.Background(),
		"urn:lsid:zoobank.org:act:8BDC0735-FEA4-4298-83FA-D04F67C3FBEC")
	require.NoError(t, err)
	assert.Equal(t, "major", act.NameString)
	assert.Equal(t, "Species", act.RankGroup)
}

func TestResolveActKindMismatch(t *testing.T) {
	c := New()
	_, err := c.ResolveAct(context.Background(),
		"urn:lsid:zoobank.org:pub:427D7953-E8FC-41E8-BEA7-8AE644E6DE77")
	assert.ErrorIs(t, err, ErrBadLSID)
}

func TestResolvePublicationNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New(WithEndpoint(srv.URL))
	_, err := c.ResolvePublication(context.Background(),
		"urn:lsid:zoobank.org:pub:427D7953-E8FC-41E8-BEA7-8AE644E6DE77")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(WithEndpoint(srv.URL))
	_, err := c.ResolveAct(context.Background(),
		"urn:lsid:zoobank.org:act:8BDC0735-FEA4-4298-83FA-D04F67C3FBEC")
	assert.ErrorIs(t, err, ErrNotFound)
}
