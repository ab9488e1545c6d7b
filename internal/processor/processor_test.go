package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor imitates ffmpeg by writing a small file at the last argument.
type fakeExecutor struct {
	err       error
	noOutput  bool
	failSlice bool
	calls     [][]string
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	isSlice := false
	for _, a := range args {
		if a == "-ss" {
			isSlice = true
		}
	}
	if isSlice && f.failSlice {
		return "", errors.New("slice failed")
	}
	if f.noOutput {
		return "", nil
	}
	return "", os.WriteFile(args[len(args)-1], []byte("RIFF"), 0644)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	return name, nil
}

type fakeTranscriber struct {
	segs  []segment.Segment
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, wavPath string) ([]segment.Segment, error) {
	f.calls++
	if _, err := os.Stat(wavPath); err != nil {
		return nil, err
	}
	return f.segs, f.err
}

func (f *fakeTranscriber) Name() string { return "fake" }

// fakeExtractor returns embeddings in call order; errs fails the given calls.
type fakeExtractor struct {
	embs  []speaker.Embedding
	errs  map[int]error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, wavPath string) (speaker.Embedding, error) {
	i := f.calls
	f.calls++
	if _, err := os.Stat(wavPath); err != nil {
		return nil, err
	}
	if err := f.errs[i]; err != nil {
		return nil, err
	}
	return f.embs[i], nil
}

func (f *fakeExtractor) Name() string { return "fake" }
func (f *fakeExtractor) Close() error { return nil }

type fakeSummarizer struct {
	text, prompt string
	out          string
	err          error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text, prompt string) (string, error) {
	f.text, f.prompt = text, prompt
	return f.out, f.err
}

type fixture struct {
	cfg   *config.Config
	exec  *fakeExecutor
	tr    *fakeTranscriber
	ext   *fakeExtractor
	sum   *fakeSummarizer
	proc  Processor
	input string
}

func newFixture(t *testing.T, mutate func(*fixture)) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		cfg: &config.Config{
			Paths: config.PathsConfig{
				Input:    filepath.Join(root, "input"),
				Output:   filepath.Join(root, "output"),
				Archived: filepath.Join(root, "archived"),
				Temp:     filepath.Join(root, "temp"),
			},
			Pipeline: config.PipelineConfig{
				MinDuration:       1.5,
				MaxGap:            1.0,
			},
			Summary: config.SummaryConfig{
				Prompt:  config.DefaultPrompt,
				User:    "guest",
				Archive: filepath.Join(root, "summaries"),
			},
		},
		exec:  &fakeExecutor{},
		tr:    &fakeTranscriber{segs: []segment.Segment{{Start: 0, End: 1, Text: "hello"}}},
		ext:   &fakeExtractor{embs: []speaker.Embedding{{1, 0, 0}}},
		sum:   &fakeSummarizer{out: "# Summary\n- done"},
		input: filepath.Join(root, "input"),
	}
	require.NoError(t, os.MkdirAll(f.input, 0755))
	if mutate != nil {
		mutate(f)
	}

	rt := &Runtime{Transcriber: f.tr, Extractor: f.ext}
	if f.sum != nil {
		f.proc = New(f.cfg, rt, f.exec, f.sum, logger.Discard())
	} else {
		f.proc = New(f.cfg, rt, f.exec, nil, logger.Discard())
	}
	return f
}

func assertTempEmpty(t *testing.T, f *fixture) {
	t.Helper()
	entries, err := os.ReadDir(f.cfg.Paths.Temp)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTranscribeSingleSpeaker(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.proc.Transcribe(context.Background(), "meeting.m4a", strings.NewReader("audio"))
	require.NoError(t, err)

	assert.NotEmpty(t, res.JobID)
	assert.Equal(t, 1, res.Speakers)
	assert.Equal(t, 0, res.Unknown)
	assert.Equal(t, "WEBVTT\n\n00:00:00 --> 00:00:01\nspeaker 1: hello\n", string(res.Document))
	assertTempEmpty(t, f)

	// transcode then one slice
	require.Len(t, f.exec.calls, 2)
	assert.Equal(t, []string{"ffmpeg", "-y", "-i"}, f.exec.calls[0][:3])
	assert.Contains(t, f.exec.calls[0], "pcm_s16le")
	assert.Contains(t, f.exec.calls[1], "-ss")
}

func TestTranscribeSpeakers(t *testing.T) {
	segs := []segment.Segment{
		{Start: 0, End: 1, Text: "a"},
		{Start: 1, End: 2, Text: "b"},
		{Start: 2, End: 3, Text: "c"},
	}

	tests := []struct {
		name     string
		embs     []speaker.Embedding
		errs     map[int]error
		labels   []string
		speakers int
		unknown  int
	}{
		{
			name:     "distinct voices",
			embs:     []speaker.Embedding{{1, 0}, {0, 1}, {1, 0}},
			labels:   []string{"speaker 1", "speaker 2", "speaker 1"},
			speakers: 2,
		},
		{
			name:     "embedding failure is isolated",
			embs:     []speaker.Embedding{{1, 0}, nil, {1, 0}},
			errs:     map[int]error{1: errors.New("model failed")},
			labels:   []string{"speaker 1", "unknown speaker", "speaker 1"},
			speakers: 1,
			unknown:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(f *fixture) {
				f.tr.segs = segs
				f.ext.embs = tt.embs
				f.ext.errs = tt.errs
			})

			res, err := f.proc.Transcribe(context.Background(), "meeting.wav", strings.NewReader("audio"))
			require.NoError(t, err)
			require.Len(t, res.Segments, 3)
			for i, want := range tt.labels {
				assert.Equal(t, want, res.Segments[i].Speaker)
			}
			assert.Equal(t, tt.speakers, res.Speakers)
			assert.Equal(t, tt.unknown, res.Unknown)
		})
	}
}

func TestTranscribeSliceFailureIsUnknown(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.exec.failSlice = true })

	res, err := f.proc.Transcribe(context.Background(), "meeting.mp3", strings.NewReader("audio"))
	require.NoError(t, err)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, "unknown speaker", res.Segments[0].Speaker)
	assert.Equal(t, 0, f.ext.calls)
}

func TestTranscribeFailures(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		body   string
		mutate func(*fixture)
		kind   Kind
		target error
		models bool
	}{
		{name: "empty upload", file: "a.m4a", body: "", kind: KindInput, target: ErrEmptyInput},
		{name: "unsupported extension", file: "a.txt", body: "x", kind: KindInput, target: ErrUnsupportedFormat},
		{
			name: "ffmpeg fails", file: "a.m4a", body: "x", kind: KindTranscode,
			mutate: func(f *fixture) { f.exec.err = errors.New("exit status 1") },
		},
		{
			name: "ffmpeg writes nothing", file: "a.m4a", body: "x", kind: KindTranscode,
			mutate: func(f *fixture) { f.exec.noOutput = true },
		},
		{
			name: "no segments", file: "a.m4a", body: "x", kind: KindTranscription, target: ErrNoSegments, models: true,
			mutate: func(f *fixture) { f.tr.segs = nil },
		},
		{
			name: "transcriber error", file: "a.m4a", body: "x", kind: KindTranscription, models: true,
			mutate: func(f *fixture) { f.tr.err = errors.New("model crashed") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.mutate)

			res, err := f.proc.Transcribe(context.Background(), tt.file, strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.kind, KindOf(err))
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if !tt.models {
				assert.Equal(t, 0, f.tr.calls)
			}
			assert.Equal(t, 0, f.ext.calls)
			assertTempEmpty(t, f)
		})
	}
}

func TestTranscribeEmptyUploadSkipsTools(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.proc.Transcribe(context.Background(), "a.m4a", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, f.exec.calls)
	assert.Equal(t, 0, f.tr.calls)
}

func TestTranscribeWithoutDiarization(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		disabled := false
		f.cfg.Pipeline.EnableSpeakerDiarization = &disabled
		f.cfg.Pipeline.TimestampPrecision = "milliseconds"
		f.tr.segs = []segment.Segment{{Start: 1.25, End: 1.25, Text: " hi "}}
	})

	res, err := f.proc.Transcribe(context.Background(), "a.mp4", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n\n00:00:01.250 --> 00:00:01.750\nhi\n", string(res.Document))
	assert.Equal(t, 0, f.ext.calls)
	assert.Equal(t, 0, res.Speakers)
}

func TestTranscribeWithMerge(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.cfg.Pipeline.EnableSegmentMerge = true
		f.tr.segs = []segment.Segment{
			{Start: 0, End: 2, Text: "a"},
			{Start: 2.5, End: 4, Text: "b"},
			{Start: 10, End: 12, Text: "c"},
		}
		f.ext.embs = []speaker.Embedding{{1, 0}, {1, 0}}
	})

	res, err := f.proc.Transcribe(context.Background(), "a.wav", strings.NewReader("x"))
	require.NoError(t, err)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, "a b", res.Segments[0].Text)
	assert.Equal(t, 4.0, res.Segments[0].End)
	assert.Equal(t, 2, f.ext.calls)
}

func TestSummarize(t *testing.T) {
	doc := []byte("WEBVTT\n\n00:00:00 --> 00:00:01\nspeaker 1: hello\n")

	t.Run("writes documents and archive", func(t *testing.T) {
		f := newFixture(t, nil)

		sum, err := f.proc.Summarize(context.Background(), SummaryRequest{Name: "standup.vtt", Transcript: doc, User: "alice"})
		require.NoError(t, err)

		assert.Equal(t, "speaker 1: hello", f.sum.text)
		assert.Equal(t, config.DefaultPrompt, f.sum.prompt)
		assert.Equal(t, filepath.Join(f.cfg.Paths.Output, "standup_summary.md"), sum.Markdown)
		assert.FileExists(t, sum.Markdown)
		assert.FileExists(t, sum.Docx)
		require.NotNil(t, sum.Archive)
		assert.Equal(t, filepath.Join(f.cfg.Summary.Archive, "alice"), sum.Archive.Dir)

		archived, err := os.ReadFile(sum.Archive.Source)
		require.NoError(t, err)
		assert.Equal(t, doc, archived)
		assert.True(t, strings.HasSuffix(sum.Archive.Source, "standup.vtt_"+sum.Archive.Suffix))
	})

	t.Run("prompt override and source", func(t *testing.T) {
		f := newFixture(t, nil)

		sum, err := f.proc.Summarize(context.Background(), SummaryRequest{
			Name:       "standup",
			Transcript: doc,
			Prompt:     "Key decisions: {context}",
			Source:     bytes.NewReader([]byte("audio")),
			SourceName: "standup.m4a",
		})
		require.NoError(t, err)
		assert.Equal(t, "Key decisions: {context}", f.sum.prompt)
		assert.Equal(t, filepath.Join(f.cfg.Summary.Archive, "guest"), sum.Archive.Dir)

		prompt, err := os.ReadFile(sum.Archive.Prompt)
		require.NoError(t, err)
		assert.Equal(t, "Key decisions: {context}", string(prompt))
	})

	t.Run("empty transcript", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.proc.Summarize(context.Background(), SummaryRequest{Name: "x", Transcript: []byte("WEBVTT\n")})
		assert.Equal(t, KindInput, KindOf(err))
	})

	t.Run("summarizer error", func(t *testing.T) {
		f := newFixture(t, func(f *fixture) { f.sum.err = errors.New("quota") })
		_, err := f.proc.Summarize(context.Background(), SummaryRequest{Name: "x", Transcript: doc})
		assert.Equal(t, KindSummary, KindOf(err))
	})

	t.Run("no summarizer", func(t *testing.T) {
		f := newFixture(t, func(f *fixture) { f.sum = nil })
		_, err := f.proc.Summarize(context.Background(), SummaryRequest{Name: "x", Transcript: doc})
		assert.ErrorIs(t, err, ErrNoSummarizer)
	})
}

func TestProcessRecording(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.Summary.Enabled = true })
	path := filepath.Join(f.input, "weekly.m4a")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0644))

	require.NoError(t, f.proc.Process(context.Background(), path))

	vttData, err := os.ReadFile(filepath.Join(f.cfg.Paths.Output, "weekly.vtt"))
	require.NoError(t, err)
	assert.Contains(t, string(vttData), "speaker 1: hello")
	assert.FileExists(t, filepath.Join(f.cfg.Paths.Output, "weekly_transcript.docx"))
	assert.FileExists(t, filepath.Join(f.cfg.Paths.Output, "weekly_summary.md"))
	assert.FileExists(t, filepath.Join(f.cfg.Paths.Archived, "weekly.m4a"))
	assert.NoFileExists(t, path)
	assertTempEmpty(t, f)
}

func TestProcessTranscript(t *testing.T) {
	f := newFixture(t, nil)
	path := filepath.Join(f.input, "notes.vtt")
	require.NoError(t, os.WriteFile(path, []byte("WEBVTT\n\n00:00:00 --> 00:00:02\nspeaker 2: ship it\n"), 0644))

	require.NoError(t, f.proc.Process(context.Background(), path))
	assert.Equal(t, "speaker 2: ship it", f.sum.text)
	assert.FileExists(t, filepath.Join(f.cfg.Paths.Output, "notes_summary.docx"))
	assert.Equal(t, 0, f.tr.calls)
}

func TestProcessFailureKeepsInput(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.exec.err = errors.New("boom") })
	path := filepath.Join(f.input, "weekly.m4a")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0644))

	err := f.proc.Process(context.Background(), path)
	assert.Equal(t, KindTranscode, KindOf(err))
	assert.FileExists(t, path)
}

func TestJobError(t *testing.T) {
	err := newJobError(KindInput, "a.m4a", ErrEmptyInput)
	assert.Equal(t, "[input] a.m4a: upload is empty", err.Error())
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, "[summary] x", newJobError(KindSummary, "x", nil).Error())

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, "success", status(nil))
	assert.Equal(t, "error", status(errors.New("plain")))
	assert.Equal(t, "transcode", status(newJobError(KindTranscode, "x", nil)))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.M4A"))
	assert.True(t, IsSupported("dir/b.webm"))
	assert.False(t, IsSupported("c.vtt"))
	assert.False(t, IsSupported("noext"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "weekly", baseName("/in/weekly.m4a"))
	assert.Equal(t, "a.b", baseName("a.b.vtt"))
	assert.Equal(t, "transcript", baseName(""))
}
