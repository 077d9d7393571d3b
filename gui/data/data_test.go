package data

import (
	"testing"

	"recoveryui/gui/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreValues(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.GetValue("nope"))
	assert.Equal(t, 7, s.GetInt("nope", 7))

	s.SetValue("tw_button_vibrate", " 40 ")
	assert.Equal(t, 40, s.GetInt("tw_button_vibrate", 0))
	s.SetValue("bad", "x")
	assert.Equal(t, 3, s.GetInt("bad", 3))
}

func TestLoadVariables(t *testing.T) {
	doc, err := theme.Parse([]byte(`<variables>
		<variable name="a" value="1"/>
		<variable value="orphan"/>
		<other name="b" value="2"/>
		<variable name="a" value="3"/>
	</variables>`))
	require.NoError(t, err)

	s := NewStore()
	assert.Equal(t, 2, s.LoadVariables(doc.Root()))
	assert.Equal(t, "3", s.GetValue("a"))
	_, ok := s.Lookup("b")
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	s := NewStore()
	s.SetValue("ver", "3.7")
	s.SetValue("dev", "bacon")

	assert.Equal(t, "TWRP 3.7 on bacon", s.Expand("TWRP %ver% on %dev%"))
	assert.Equal(t, "100%done%", s.Expand("100%done%"))
	assert.Equal(t, "50% 3.7", s.Expand("50% %ver%"))
	assert.Equal(t, "%%", s.Expand("%%"))
	assert.Equal(t, "plain", s.Expand("plain"))
}
