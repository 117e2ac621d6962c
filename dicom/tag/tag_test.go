package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmgo/dcmgo/dicom/tag"
	"github.com/dcmgo/dcmgo/dicom/vr"
)

func TestTag_KeyAndString(t *testing.T) {
	tg := tag.New(0x0010, 0x0010)
	assert.Equal(t, "x00100010", tg.Key())
	assert.Equal(t, "(0010,0010)", tg.String())
}

func TestTag_Equals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     tag.Tag
		expected bool
	}{
		{"equal", tag.New(0x0008, 0x0020), tag.New(0x0008, 0x0020), true},
		{"different group", tag.New(0x0008, 0x0020), tag.New(0x0010, 0x0020), false},
		{"different element", tag.New(0x0008, 0x0020), tag.New(0x0008, 0x0030), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Equals(tc.b))
		})
	}
}

func TestTag_IsPrivate(t *testing.T) {
	assert.True(t, tag.New(0x0009, 0x0010).IsPrivate())
	assert.False(t, tag.New(0x0008, 0x0010).IsPrivate())
}

func TestTag_IsNoVR(t *testing.T) {
	assert.True(t, tag.New(tag.ItemGroup, tag.ItemElement).IsNoVR())
	assert.True(t, tag.New(tag.ItemGroup, tag.ItemDelimitationElement).IsNoVR())
	assert.True(t, tag.New(tag.ItemGroup, tag.SequenceDelimitationElement).IsNoVR())
	assert.False(t, tag.New(0x0008, 0x0020).IsNoVR())
}

func TestTag_FramingPredicates(t *testing.T) {
	item := tag.New(tag.ItemGroup, tag.ItemElement)
	itemDelim := tag.New(tag.ItemGroup, tag.ItemDelimitationElement)
	seqDelim := tag.New(tag.ItemGroup, tag.SequenceDelimitationElement)

	assert.True(t, item.IsItem())
	assert.False(t, item.IsItemDelimiter())
	assert.True(t, itemDelim.IsItemDelimiter())
	assert.True(t, seqDelim.IsSequenceDelimiter())
	assert.False(t, seqDelim.IsItem())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    tag.Tag
		wantErr bool
	}{
		{"parenthesized", "(0010,0010)", tag.New(0x0010, 0x0010), false},
		{"bare", "7FE0,0010", tag.New(0x7FE0, 0x0010), false},
		{"lowercase hex", "(7fe0,00ff)", tag.New(0x7FE0, 0x00FF), false},
		{"missing comma", "00100010", tag.Tag{}, true},
		{"bad hex", "(ZZZZ,0010)", tag.Tag{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tag.Parse(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDictionary_Find(t *testing.T) {
	patientName := tag.New(0x0010, 0x0010)
	dict := tag.NewDictionary(map[tag.Tag]tag.Info{
		patientName: {VR: vr.PersonName, VM: "1", Keyword: "PatientName", Name: "Patient's Name"},
	})

	t.Run("hit", func(t *testing.T) {
		info, ok := dict.Find(patientName)
		require.True(t, ok)
		assert.Equal(t, vr.PersonName, info.VR)
		assert.Equal(t, "PatientName", info.Keyword)
	})

	t.Run("generic group length convention", func(t *testing.T) {
		info, ok := dict.Find(tag.New(0x0009, 0x0000))
		require.True(t, ok)
		assert.Equal(t, vr.UnsignedLong, info.VR)
		assert.Equal(t, "GenericGroupLength", info.Keyword)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := dict.Find(tag.New(0x0009, 0x0099))
		assert.False(t, ok)
	})

	t.Run("nil dictionary misses rather than panics", func(t *testing.T) {
		var nilDict *tag.Dictionary
		_, ok := nilDict.Find(patientName)
		assert.False(t, ok)
	})
}

func TestDictionary_FindByKeyword(t *testing.T) {
	studyUID := tag.New(0x0020, 0x000D)
	dict := tag.NewDictionary(map[tag.Tag]tag.Info{
		studyUID: {VR: vr.UniqueIdentifier, VM: "1", Keyword: "StudyInstanceUID", Name: "Study Instance UID"},
	})

	t.Run("hit", func(t *testing.T) {
		got, info, ok := dict.FindByKeyword("StudyInstanceUID")
		require.True(t, ok)
		assert.Equal(t, studyUID, got)
		assert.Equal(t, vr.UniqueIdentifier, info.VR)
	})

	t.Run("miss", func(t *testing.T) {
		_, _, ok := dict.FindByKeyword("NoSuchKeyword")
		assert.False(t, ok)
	})
}
