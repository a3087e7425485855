package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(label, ean, nombre string) Entry {
	e := Entry{Identity: ParseRef(label)}
	e.Code = trimmedNullString(ean)
	e.Name = trimmedNullString(nombre)
	return e
}

func TestBuildIndexFirstWins(t *testing.T) {
	ix := BuildIndex([]Entry{
		entry("[REF001] (ROJO, M)", "1111111111111", "CAMISETA"),
		entry("[REF001] (ROJO, M)", "2222222222222", "CAMISETA BIS"),
	})

	got, ok := ix.Lookup(ParseRef("[REF001] (ROJO, M)"))
	require.True(t, ok)
	assert.Equal(t, valid("1111111111111"), got.Code)

	// Полный список сохраняет обе строки
	assert.Equal(t, 2, ix.Len())
}

func TestLookupDistinguishesAbsentFields(t *testing.T) {
	ix := BuildIndex([]Entry{
		entry("[REF001] (ROJO, M)", "1111111111111", "CAMISETA"),
		entry("[REF001] (ROJO)", "2222222222222", "CAMISETA"),
	})

	withTalla, ok := ix.Lookup(ParseRef("[REF001] (ROJO, M)"))
	require.True(t, ok)
	assert.Equal(t, valid("1111111111111"), withTalla.Code)

	withoutTalla, ok := ix.Lookup(ParseRef("[REF001] (ROJO)"))
	require.True(t, ok)
	assert.Equal(t, valid("2222222222222"), withoutTalla.Code)
}

func TestSearchGroupsVariants(t *testing.T) {
	ix := BuildIndex([]Entry{
		entry("[REF001] (ROJO, M)", "1111111111111", "CAMISETA"),
		entry("[REF001] (NEGRO, L)", "2222222222222", "CAMISETA"),
		entry("[REF002] (AZUL, S)", "3333333333333", "PANTALON"),
	})

	groups := ix.Search("ref001")
	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].Ref)
	assert.Equal(t, "REF001", *groups[0].Ref)
	require.Len(t, groups[0].Variantes, 2)
	assert.Equal(t, "ROJO", *groups[0].Variantes[0].Color)
	assert.Equal(t, "NEGRO", *groups[0].Variantes[1].Color)
}

func TestSearchMatchesName(t *testing.T) {
	ix := BuildIndex([]Entry{
		entry("[REF001] (ROJO, M)", "1111111111111", "CAMISETA BÁSICA"),
		entry("[REF002] (AZUL, S)", "3333333333333", "PANTALON"),
	})

	groups := ix.Search("camiseta")
	require.Len(t, groups, 1)
	assert.Equal(t, "REF001", *groups[0].Ref)
}

func TestSearchEmptyQuery(t *testing.T) {
	ix := BuildIndex([]Entry{entry("[REF001] (ROJO, M)", "1", "CAMISETA")})

	assert.Nil(t, ix.Search(""))
	assert.Nil(t, ix.Search("   "))
}

func TestSearchAbsentFieldsNeverMatch(t *testing.T) {
	// Запись без референса и без наименования не должна совпадать ни с чем
	ix := BuildIndex([]Entry{
		{Identity: Identity{Color: valid("ROJO")}},
		entry("[REF001] (ROJO, M)", "1", "CAMISETA"),
	})

	groups := ix.Search("rojo")
	assert.Empty(t, groups)
}
