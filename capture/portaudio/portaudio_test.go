package portaudio

import (
	"errors"
	"testing"

	"github.com/gordonklaus/portaudio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agnivade/pitchtrack/capture"
)

func TestStream_ReadInt16(t *testing.T) {
	tests := []struct {
		name      string
		deviceBuf []int16
		readSizes []int
		want      [][]int16
	}{
		{
			name:      "read whole buffer",
			deviceBuf: []int16{1, 2, 3, 4},
			readSizes: []int{4},
			want:      [][]int16{{1, 2, 3, 4}},
		},
		{
			name:      "pending samples served before next device read",
			deviceBuf: []int16{1, 2, 3, 4},
			readSizes: []int{3, 3},
			want:      [][]int16{{1, 2, 3}, {4}},
		},
		{
			name:      "larger destination gets one device buffer",
			deviceBuf: []int16{7, 8},
			readSizes: []int{5},
			want:      [][]int16{{7, 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStream := newMockpaStream(t)
			s := &Stream{
				stream:   mockStream,
				encoding: capture.Int16,
				buf16:    make([]int16, len(tt.deviceBuf)),
			}
			mockStream.EXPECT().Read().Run(func() {
				copy(s.buf16, tt.deviceBuf)
			}).Return(nil).Once()

			for i, size := range tt.readSizes {
				dst := make([]int16, size)
				n, err := s.ReadInt16(dst)
				require.NoError(t, err)
				assert.Equal(t, tt.want[i], dst[:n])
			}
		})
	}
}

func TestStream_ReadFloat32(t *testing.T) {
	mockStream := newMockpaStream(t)
	s := &Stream{
		stream:   mockStream,
		encoding: capture.Float32,
		buf32:    make([]float32, 2),
	}
	mockStream.EXPECT().Read().Run(func() {
		s.buf32[0], s.buf32[1] = 0.25, -0.5
	}).Return(nil).Twice()

	dst := make([]float32, 4)
	n, err := s.ReadFloat32(dst)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5}, dst[:n])

	n, err = s.ReadFloat32(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStream_WrongEncoding(t *testing.T) {
	s := &Stream{encoding: capture.Float32}
	_, err := s.ReadInt16(make([]int16, 4))
	assert.ErrorIs(t, err, capture.ErrEncoding)

	s = &Stream{encoding: capture.Int16}
	_, err = s.ReadFloat32(make([]float32, 4))
	assert.ErrorIs(t, err, capture.ErrEncoding)
}

func TestStream_ReadErrors(t *testing.T) {
	t.Run("overflow still delivers samples", func(t *testing.T) {
		mockStream := newMockpaStream(t)
		s := &Stream{stream: mockStream, encoding: capture.Int16, buf16: []int16{5, 6}}
		mockStream.EXPECT().Read().Return(portaudio.InputOverflowed).Once()

		dst := make([]int16, 2)
		n, err := s.ReadInt16(dst)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("device error is returned", func(t *testing.T) {
		mockStream := newMockpaStream(t)
		s := &Stream{stream: mockStream, encoding: capture.Int16, buf16: make([]int16, 2)}
		mockStream.EXPECT().Read().Return(errors.New("device gone")).Once()

		_, err := s.ReadInt16(make([]int16, 2))
		assert.EqualError(t, err, "device gone")
	})

	t.Run("error after stop reports stopped", func(t *testing.T) {
		mockStream := newMockpaStream(t)
		s := &Stream{stream: mockStream, encoding: capture.Int16, buf16: make([]int16, 2)}
		mockStream.EXPECT().Stop().Return(nil).Once()
		mockStream.EXPECT().Read().Run(func() {
			_ = s.Stop()
		}).Return(errors.New("stream is stopped")).Once()

		_, err := s.ReadInt16(make([]int16, 2))
		assert.ErrorIs(t, err, capture.ErrStopped)

		// No further device reads once stopped.
		_, err = s.ReadInt16(make([]int16, 2))
		assert.ErrorIs(t, err, capture.ErrStopped)
	})
}

func TestStream_StopAndCloseAreIdempotent(t *testing.T) {
	mockStream := newMockpaStream(t)
	s := &Stream{stream: mockStream, encoding: capture.Int16}
	mockStream.EXPECT().Stop().Return(nil).Once()
	mockStream.EXPECT().Close().Return(nil).Once()

	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestStream_CloseJoinsErrors(t *testing.T) {
	mockStream := newMockpaStream(t)
	s := &Stream{stream: mockStream, encoding: capture.Int16}
	stopErr := errors.New("stop failed")
	closeErr := errors.New("close failed")
	mockStream.EXPECT().Stop().Return(stopErr).Once()
	mockStream.EXPECT().Close().Return(closeErr).Once()

	err := s.Close()
	assert.ErrorIs(t, err, stopErr)
	assert.ErrorIs(t, err, closeErr)
}
