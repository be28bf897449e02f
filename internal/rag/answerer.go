package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"repoqa/internal/contextutil"
	"repoqa/internal/llm"
)

// StaticErrorMessage is streamed when even the apology cannot be generated.
const StaticErrorMessage = "Sorry, there was an error processing your request. Please try again."

// NotEnoughInformation is the phrase the model is told to use when the context is insufficient.
const NotEnoughInformation = "I don't have enough information in the provided context to answer this question."

const streamBuffer = 64

const groundedPrompt = `You are an AI code assistant who answers questions about a codebase for a technical intern with basic programming knowledge.
You are knowledgeable, helpful and articulate. When the question is about code or a specific file, give a detailed,
step by step answer with explanations and relevant code examples.

START CONTEXT BLOCK
%s
END OF CONTEXT BLOCK

START QUESTION
%s
END OF QUESTION

Take the CONTEXT BLOCK into account. If the context does not provide the answer to the question, say
"` + NotEnoughInformation + `"
Do not apologize for previous responses; indicate when new information was gained.
Do not invent anything that is not drawn directly from the context.
Answer in Markdown, with code snippets in fenced code blocks where useful. Break complex concepts down into clear explanations.`

const generalPrompt = `You are an AI code assistant who helps a technical intern understand a codebase.
No file of the project matched the question below closely enough to be used as context.
Say that no relevant files were found, then give general guidance that could help, without claiming
anything specific about this codebase. Answer in Markdown.

Question: %s`

const apologyPrompt = `There was an error processing the request below. Write a short, friendly and professional response
explaining that there was a technical issue, and suggest trying again or rephrasing the question.

Original question: %s`

var errAbandoned = errors.New("stream abandoned by reader")

// Answerer answers questions about a project from its retrieved files.
type Answerer struct {
	retriever Retriever
	gen       llm.Generator
	limiter   *llm.Limiter
	retry     llm.RetryPolicy
}

// NewAnswerer creates an Answerer.
func NewAnswerer(retriever Retriever, gen llm.Generator, limiter *llm.Limiter, retry llm.RetryPolicy) *Answerer {
	return &Answerer{
		retriever: retriever,
		gen:       gen,
		limiter:   limiter,
		retry:     retry,
	}
}

// Ask starts answering question and returns once the answer's status is known.
// Generation continues in the background, detached from ctx cancellation; the
// returned stream always yields at least one chunk.
func (a *Answerer) Ask(ctx context.Context, projectID, question string) *Answer {
	logger := contextutil.LoggerFromContext(ctx)
	bg := context.WithoutCancel(ctx)
	stream := NewStream(streamBuffer)

	results, err := a.retriever.Retrieve(ctx, projectID, question)
	if err != nil {
		logger.ErrorContext(ctx, "retrieval failed", "project_id", projectID, "error", err)
		go func() {
			defer stream.Close()
			a.apologize(bg, stream, question)
		}()
		return &Answer{Stream: stream, References: []Result{}, Status: StatusServerError}
	}

	status := StatusOK
	prompt := fmt.Sprintf(groundedPrompt, buildContext(results), question)
	if len(results) == 0 {
		status = StatusNoRelevantFiles
		prompt = fmt.Sprintf(generalPrompt, question)
	}

	started := make(chan error, 1)
	go a.generate(bg, stream, prompt, question, started)

	if err := <-started; err != nil {
		logger.ErrorContext(ctx, "answer generation failed", "project_id", projectID, "error", err)
		return &Answer{Stream: stream, References: []Result{}, Status: StatusServerError}
	}
	return &Answer{Stream: stream, References: results, Status: status}
}

// generate streams the answer. started receives nil with the first chunk, or the
// error that prevented any output, in which case an apology is streamed instead.
func (a *Answerer) generate(ctx context.Context, s *Stream, prompt, question string, started chan<- error) {
	defer s.Close()
	logger := contextutil.LoggerFromContext(ctx)

	sent := false
	_, err := llm.Retry(ctx, a.retry, a.limiter, func(ctx context.Context) (struct{}, error) {
		err := a.gen.StreamGenerate(ctx, "", prompt, func(chunk string) error {
			if chunk == "" {
				return nil
			}
			if !sent {
				sent = true
				started <- nil
			}
			if !s.Send(chunk) {
				return errAbandoned
			}
			return nil
		})
		if err != nil && sent {
			// Retrying would repeat what the reader already has.
			if !errors.Is(err, errAbandoned) {
				logger.WarnContext(ctx, "answer stream ended early", "error", err)
			}
			return struct{}{}, nil
		}
		return struct{}{}, err
	})
	if sent {
		return
	}

	if err == nil {
		err = errors.New("model returned an empty answer")
	}
	started <- err
	a.apologize(ctx, s, question)
}

// apologize streams a generated apology, or StaticErrorMessage if that fails too.
func (a *Answerer) apologize(ctx context.Context, s *Stream, question string) {
	logger := contextutil.LoggerFromContext(ctx)

	sent := false
	err := a.limiter.Wait(ctx)
	if err == nil {
		err = a.gen.StreamGenerate(ctx, "", fmt.Sprintf(apologyPrompt, question), func(chunk string) error {
			if chunk == "" {
				return nil
			}
			sent = true
			if !s.Send(chunk) {
				return errAbandoned
			}
			return nil
		})
	}
	if sent {
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "apology generation failed", "error", err)
	}
	s.Send(StaticErrorMessage)
}

// buildContext renders results as the context block of the grounded prompt.
func buildContext(results []Result) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "source: %s\ncode content: %s\nsummary: %s\n\n", r.FileName, r.SourceCode, r.Summary)
	}
	return b.String()
}
