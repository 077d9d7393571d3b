package widget

import (
	"testing"

	"recoveryui/gui/geom"
	"recoveryui/gui/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimationSteps(t *testing.T) {
	rig := newRig(t)
	a := NewAnimation(node(t, `<object>
		<placement x="100" y="100" placement="4"/>
		<animation resource="spin"/>
		<speed render="2"/>
		<loop frame="2"/>
	</object>`), rig.env)
	assert.Equal(t, geom.Rect{X: 96, Y: 96, W: 8, H: 8}, a.RenderPos())

	res, _ := a.Update()
	assert.Equal(t, FullRepaintNeeded, res)
	require.NoError(t, a.Render())

	var frames []int
	for i := 0; i < 8; i++ {
		res, err := a.Update()
		require.NoError(t, err)
		if res == PartialRepaint {
			frames = append(frames, a.Frame())
		}
	}
	assert.Equal(t, []int{1, 2, 1, 2}, frames)
}

func TestAnimationStopsWithoutLoop(t *testing.T) {
	rig := newRig(t)
	a := NewAnimation(node(t, `<object>
		<animation resource="spin"/>
		<loop frame="-1"/>
	</object>`), rig.env)
	require.NoError(t, a.Render())
	for i := 0; i < 5; i++ {
		_, _ = a.Update()
	}
	assert.Equal(t, 2, a.Frame())
	res, _ := a.Update()
	assert.Equal(t, NoChange, res)
}

func TestAnimationMissingResource(t *testing.T) {
	rig := newRig(t)
	a := NewAnimation(node(t, `<object><animation resource="nope"/></object>`), rig.env)
	assert.True(t, a.RenderPos().Empty())
	assert.ErrorIs(t, a.Render(), errNoImage)
}

func TestAnimationTranslucentFramesNeedFullRepaint(t *testing.T) {
	rig := newRig(t)
	a := NewAnimation(node(t, `<object>
		<placement x="0" y="0"/>
		<animation resource="ghost"/>
	</object>`), rig.env)
	rig.env.Canvas.FillRect(0, 0, 8, 8, gfx.RGB(0, 0, 255))
	require.NoError(t, a.Render())
	before := rig.env.Canvas.Image().RGBAAt(2, 2)

	res, err := a.Update()
	require.NoError(t, err)
	assert.Equal(t, FullRepaintNeeded, res)
	assert.Equal(t, 1, a.Frame())
	assert.Equal(t, before, rig.env.Canvas.Image().RGBAAt(2, 2), "frame must not be drawn over the old one")
}
