package api

// homePage is the built-in chat page. It posts questions to the ask
// endpoint with the browser's timezone and appends the answers.
const homePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Flight Q&amp;A</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; background: #111; color: #ddd; }
  h1 { font-size: 1.2rem; }
  #log { border: 1px solid #333; border-radius: 6px; padding: 1rem; min-height: 240px; white-space: pre-wrap; }
  .q { color: #8ab4f8; margin: 0.5rem 0 0.1rem; }
  .a { color: #ddd; margin: 0 0 0.5rem; }
  .err { color: #f28b82; }
  form { display: flex; gap: 0.5rem; margin-top: 1rem; }
  input { flex: 1; padding: 0.5rem; background: #222; color: #ddd; border: 1px solid #444; border-radius: 4px; }
  button { padding: 0.5rem 1rem; background: #2b5278; color: #fff; border: 0; border-radius: 4px; cursor: pointer; }
</style>
</head>
<body>
<h1>Flight Q&amp;A</h1>
<div id="log">Ask about flights, e.g. "arrivals at XPL" or "AA3165 summary".</div>
<form id="f">
  <input id="q" autocomplete="off" placeholder="Ask a flight question" autofocus>
  <button>Ask</button>
</form>
<script>
const log = document.getElementById("log");
const tz = Intl.DateTimeFormat().resolvedOptions().timeZone || "";
document.getElementById("f").addEventListener("submit", async (e) => {
  e.preventDefault();
  const input = document.getElementById("q");
  const question = input.value.trim();
  if (!question) return;
  input.value = "";
  append("q", "> " + question);
  try {
    const resp = await fetch("/api/v1/ask?tz=" + encodeURIComponent(tz), {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({question})
    });
    const data = await resp.json();
    if (!resp.ok) {
      append("err", data.error || "request failed");
    } else {
      append("a", data.answer);
    }
  } catch (err) {
    append("err", String(err));
  }
});
function append(cls, text) {
  const p = document.createElement("p");
  p.className = cls;
  p.textContent = text;
  log.appendChild(p);
  p.scrollIntoView();
}
</script>
</body>
</html>
`
