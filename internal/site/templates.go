package site

// shellTemplate is the Go html/template for the default host page. It carries
// every mount point the renderer fills and the modal markup the viewer binds
// to.
const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
</head>
<body>
  <header class="status-bar">
    <div class="status-left">
      <span class="status-dot" aria-hidden="true"></span>
      <span class="system-name" id="system-name">{{.SystemName}}</span>
    </div>
    <div class="status-right">
      <span class="status-label">UPTIME</span>
      <span class="uptime" id="uptime">00:00:00</span>
      <button class="nav-toggle" type="button" aria-expanded="false" aria-controls="header-nav">MENU</button>
    </div>
    <nav class="header-nav" id="header-nav" aria-label="Sections"></nav>
  </header>

  <main class="layout">
    <section class="panel hero-panel" id="system-architecture">
      <div class="panel-header">
        <span class="panel-title" id="hero-panel-title">SYSTEM_ARCHITECTURE</span>
        <span class="panel-uid" id="hero-panel-uid">ID: SYS-01</span>
      </div>
      <div class="graph-container">
        <div class="mermaid" id="hero-mermaid"></div>
      </div>
      <div class="hero-message" id="hero-metrics"></div>
    </section>

    <div class="service-sections" id="service-sections"></div>
    <div class="top-panels" id="top-panels"></div>

    <section class="panel skills-panel" id="skill-set">
      <div class="panel-header">
        <span class="panel-title" id="skills-panel-title">SKILL_SET</span>
        <span class="panel-uid" id="skills-panel-uid">ID: STACK-01</span>
      </div>
      <div class="skill-grid" id="skill-grid"></div>
    </section>

    <section class="panel contact-panel" id="contact">
      <div class="panel-header">
        <span class="panel-title" id="contact-panel-title">CONTACT</span>
        <span class="panel-uid" id="contact-panel-uid">ID: COMMS-01</span>
      </div>
      <p class="contact-description" id="contact-description"></p>
      <div class="contact-actions" id="contact-actions"></div>
    </section>
  </main>

  <div class="mermaid-modal" id="mermaid-modal" aria-hidden="true">
    <div class="mermaid-modal-backdrop" data-mermaid-close></div>
    <div class="mermaid-modal-dialog" role="dialog" aria-modal="true" aria-labelledby="mermaid-modal-title">
      <div class="mermaid-modal-header">
        <h2 class="mermaid-modal-title" id="mermaid-modal-title"></h2>
        <button class="mermaid-modal-close" type="button" data-mermaid-close aria-label="Close">CLOSE</button>
      </div>
      <div class="mermaid-modal-content" id="mermaid-modal-content"></div>
    </div>
  </div>
</body>
</html>`

// cssContent is the stylesheet written next to index.html.
const cssContent = `/* ============ Variables ============ */
:root {
  --bg: #07090d;
  --panel: #0d1219;
  --panel-border: #1c2736;
  --text: #d8e1ec;
  --muted: #7d8ea3;
  --accent: #3fb6ff;
  --accent-soft: rgba(63, 182, 255, 0.12);
  --green: #3ddc97;
  --error: #ffb4b4;
  --header-height: 56px;
  --mono: "JetBrains Mono", "SFMono-Regular", Menlo, monospace;
  --sans: Inter, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
}

* { box-sizing: border-box; }

html { scroll-behavior: smooth; scroll-padding-top: calc(var(--header-height) + 16px); }

body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font-family: var(--sans);
  line-height: 1.55;
}

body.modal-open { overflow: hidden; }

a { color: var(--accent); }

/* ============ Status bar ============ */
.status-bar {
  position: fixed;
  inset: 0 0 auto 0;
  z-index: 40;
  display: flex;
  align-items: center;
  gap: 24px;
  height: var(--header-height);
  padding: 0 24px;
  background: rgba(7, 9, 13, 0.92);
  border-bottom: 1px solid var(--panel-border);
  font-family: var(--mono);
  font-size: 12px;
  letter-spacing: 0.08em;
}

.status-left, .status-right { display: flex; align-items: center; gap: 10px; }
.status-right { order: 3; margin-left: auto; }
.status-dot { width: 8px; height: 8px; border-radius: 50%; background: var(--green); box-shadow: 0 0 8px var(--green); }
.status-label { color: var(--muted); }
.uptime { color: var(--green); }

.header-nav { display: flex; gap: 4px; overflow-x: auto; }

.nav-item, .nav-sub-item {
  padding: 6px 10px;
  color: var(--muted);
  text-decoration: none;
  border: 1px solid transparent;
  white-space: nowrap;
}

.nav-item:hover, .nav-sub-item:hover { color: var(--text); }
.nav-item.is-active, .nav-sub-item.is-active { color: var(--accent); border-color: var(--accent); background: var(--accent-soft); }

.nav-toggle {
  display: none;
  padding: 6px 10px;
  font: inherit;
  color: var(--text);
  background: transparent;
  border: 1px solid var(--panel-border);
  cursor: pointer;
}

/* ============ Layout ============ */
.layout {
  display: grid;
  gap: 32px;
  max-width: 1200px;
  margin: 0 auto;
  padding: calc(var(--header-height) + 32px) 24px 64px;
}

.panel {
  background: var(--panel);
  border: 1px solid var(--panel-border);
  padding: 20px;
}

.panel-header {
  display: flex;
  justify-content: space-between;
  margin-bottom: 16px;
  font-family: var(--mono);
  font-size: 12px;
  letter-spacing: 0.1em;
}

.panel-title { color: var(--accent); }
.panel-uid { color: var(--muted); }

/* ============ Diagrams ============ */
.graph-container, .card-visual {
  position: relative;
  overflow: hidden;
  min-height: 220px;
  background: #0a0f15;
  border: 1px solid var(--panel-border);
}

.card-visual { height: var(--card-visual-height, 220px); }

.mermaid { display: flex; justify-content: center; align-items: center; height: 100%; padding: 12px; }
.mermaid svg { max-width: 100%; height: auto; }
.mermaid:not([data-processed]) { color: transparent; }

.mermaid-zoom-target { cursor: zoom-in; }
.mermaid-zoom-target:focus-visible { outline: 2px solid var(--accent); outline-offset: 2px; }

.diagram-error { font-family: var(--mono); font-size: 12px; }

.hero-visual-stack { display: grid; gap: 12px; }
.hero-diagram-notes { margin: 0; padding-left: 18px; color: var(--muted); font-size: 13px; }

.hero-message { margin-top: 16px; font-family: var(--mono); font-size: 13px; }
.hero-message p { margin: 4px 0; }

/* ============ Video preview ============ */
.youtube-hover-preview {
  position: absolute;
  inset: 0;
  opacity: 0;
  pointer-events: none;
  transition: opacity 0.2s ease;
}

.has-youtube-preview:hover .youtube-hover-preview,
.has-youtube-preview:focus-within .youtube-hover-preview { opacity: 1; }

.youtube-hover-frame { width: 100%; height: 100%; border: 0; }

.youtube-hover-hint {
  position: absolute;
  right: 8px;
  bottom: 8px;
  padding: 2px 6px;
  font-family: var(--mono);
  font-size: 10px;
  background: rgba(0, 0, 0, 0.7);
}

/* ============ Service sections ============ */
.service-sections { display: grid; gap: 32px; }

.section-title {
  margin: 0 0 16px;
  font-family: var(--mono);
  font-size: 14px;
  letter-spacing: 0.12em;
  color: var(--accent);
}

.service-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(320px, 1fr)); gap: 20px; }

.group-divider {
  grid-column: 1 / -1;
  display: flex;
  gap: 16px;
  align-items: baseline;
  padding-bottom: 6px;
  border-bottom: 1px solid var(--panel-border);
  font-family: var(--mono);
  font-size: 12px;
}

.group-divider[data-theme="green"] .group-title { color: var(--green); }
.group-title { color: var(--accent); letter-spacing: 0.1em; }
.group-desc { color: var(--muted); }

.service-card { display: flex; flex-direction: column; background: var(--panel); border: 1px solid var(--panel-border); }
.card-content { padding: 16px; }
.card-title { margin: 0 0 4px; font-size: 17px; }
.card-subtitle { margin: 0 0 10px; color: var(--muted); font-size: 13px; }
.card-desc { margin: 0 0 10px; }
.card-meta-line { margin: 2px 0; font-size: 13px; }
.meta-label { margin-right: 6px; color: var(--muted); font-family: var(--mono); font-size: 11px; }

.card-tags { display: flex; flex-wrap: wrap; gap: 6px; margin: 10px 0; }
.card-tag { padding: 2px 8px; font-family: var(--mono); font-size: 11px; border: 1px solid var(--panel-border); }

.card-highlights { margin: 10px 0; padding-left: 18px; font-size: 13px; }

.card-links { display: flex; flex-wrap: wrap; gap: 8px; margin-top: 12px; }

.card-link, .action-btn {
  display: inline-block;
  padding: 6px 12px;
  font-family: var(--mono);
  font-size: 12px;
  color: var(--text);
  text-decoration: none;
  border: 1px solid var(--panel-border);
}

.card-link.is-primary { color: var(--bg); background: var(--accent); border-color: var(--accent); }
.card-link.is-ghost { background: transparent; }
.card-link:hover, .action-btn:hover { border-color: var(--accent); }

.is-markdown p { margin: 0 0 8px; }
.is-markdown code { font-family: var(--mono); font-size: 0.9em; }

/* ============ Skills and contact ============ */
.skill-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 16px; }
.skill-card { padding: 14px; border: 1px solid var(--panel-border); }
.skill-card-title { margin: 0 0 6px; font-family: var(--mono); font-size: 12px; color: var(--accent); }
.skill-card-stack { margin: 0; font-size: 14px; }

.contact-actions { display: flex; flex-wrap: wrap; gap: 10px; }

/* ============ Modal ============ */
.mermaid-modal { position: fixed; inset: 0; z-index: 80; display: none; }
.mermaid-modal.is-open { display: block; }
.mermaid-modal-backdrop { position: absolute; inset: 0; background: rgba(0, 0, 0, 0.78); }

.mermaid-modal-dialog {
  position: absolute;
  inset: 4vh 4vw;
  display: flex;
  flex-direction: column;
  background: var(--panel);
  border: 1px solid var(--panel-border);
}

.mermaid-modal-header { display: flex; justify-content: space-between; align-items: center; padding: 12px 16px; border-bottom: 1px solid var(--panel-border); }
.mermaid-modal-title { margin: 0; font-family: var(--mono); font-size: 14px; letter-spacing: 0.08em; }
.mermaid-modal-close, .mermaid-zoom-btn { font-family: var(--mono); color: var(--text); background: transparent; border: 1px solid var(--panel-border); padding: 4px 10px; cursor: pointer; }

.mermaid-modal-controls { display: flex; align-items: center; gap: 8px; padding: 8px 16px; border-top: 1px solid var(--panel-border); order: 3; }
.mermaid-zoom-value { min-width: 48px; font-family: var(--mono); font-size: 12px; color: var(--muted); }

.mermaid-modal-content { flex: 1; min-height: 0; }
.mermaid-modal-layout { display: grid; height: 100%; grid-template-columns: 1fr; }
.mermaid-modal-content.has-linked-video .mermaid-modal-layout { grid-template-columns: 3fr 2fr; }

.mermaid-modal-panel { display: flex; flex-direction: column; min-height: 0; border-right: 1px solid var(--panel-border); }
.mermaid-modal-panel-header { display: flex; justify-content: space-between; padding: 6px 12px; font-family: var(--mono); font-size: 11px; color: var(--muted); border-bottom: 1px solid var(--panel-border); }
.mermaid-modal-panel-body { flex: 1; min-height: 0; }

.mermaid-modal-diagram-viewport { width: 100%; height: 100%; overflow: auto; }
.mermaid-modal-diagram-viewport.can-pan { cursor: grab; }
.mermaid-modal-diagram-viewport.is-panning { cursor: grabbing; user-select: none; }
.mermaid-modal-canvas { margin: 0 auto; }

.mermaid-modal-video-wrap { position: relative; height: 100%; }
.mermaid-modal-video { position: absolute; inset: 0; width: 100%; height: 100%; border: 0; }

/* ============ Mobile ============ */
@media (max-width: 768px) {
  .nav-toggle { display: inline-block; }
  .header-nav {
    position: absolute;
    top: var(--header-height);
    left: 0;
    right: 0;
    display: none;
    flex-direction: column;
    padding: 8px 16px;
    background: var(--panel);
    border-bottom: 1px solid var(--panel-border);
  }
  .header-nav.is-open { display: flex; }
  .mermaid-modal-content.has-linked-video .mermaid-modal-layout { grid-template-columns: 1fr; grid-template-rows: 3fr 2fr; }
}
`

// jsContent is the browser runtime written next to index.html. The page
// arrives fully rendered; the runtime attaches behaviour to it.
const jsContent = `(function() {
  'use strict';

  var cfgNode = document.getElementById('folio-config');
  var cfg = {};
  try { cfg = cfgNode ? JSON.parse(cfgNode.textContent) : {}; } catch (e) { cfg = {}; }

  var ZOOM_MIN = 0.55, ZOOM_MAX = 3.0, ZOOM_STEP = 0.15, BASE_SCALE = 1.08;

  // ---------- Analytics ----------
  function pushEvent(ev) {
    if (!cfg.analytics) return;
    var layer = window[cfg.dataLayer || 'dataLayer'];
    if (!layer || typeof layer.push !== 'function') return;
    try { layer.push(ev); } catch (e) { /* tracking never breaks navigation */ }
  }

  document.addEventListener('click', function(e) {
    var link = e.target.closest ? e.target.closest('[data-analytics]') : null;
    if (!link) return;
    try { pushEvent(JSON.parse(link.getAttribute('data-analytics'))); } catch (err) {}
  });

  // ---------- Uptime ----------
  var uptime = document.getElementById('uptime');
  if (uptime) {
    var start = Date.now();
    var pad = function(n) { return n < 10 ? '0' + n : String(n); };
    var tick = function() {
      var s = Math.floor((Date.now() - start) / 1000);
      uptime.textContent = pad(Math.floor(s / 3600)) + ':' + pad(Math.floor((s % 3600) / 60)) + ':' + pad(s % 60);
    };
    tick();
    setInterval(tick, 1000);
  }

  // ---------- Mobile navigation ----------
  var nav = document.getElementById('header-nav');
  var toggle = document.querySelector('.nav-toggle');
  if (nav && toggle) {
    var setMenu = function(open) {
      nav.classList.toggle('is-open', open);
      toggle.classList.toggle('is-open', open);
      toggle.setAttribute('aria-expanded', open ? 'true' : 'false');
    };
    toggle.addEventListener('click', function(e) {
      e.stopPropagation();
      setMenu(!nav.classList.contains('is-open'));
    });
    nav.addEventListener('click', function(e) {
      if (e.target.classList.contains('nav-item') || e.target.classList.contains('nav-sub-item')) setMenu(false);
    });
    document.addEventListener('click', function(e) {
      if (!nav.contains(e.target) && !toggle.contains(e.target)) setMenu(false);
    });
    document.addEventListener('keydown', function(e) { if (e.key === 'Escape') setMenu(false); });
    window.addEventListener('resize', function() { if (window.innerWidth > 768) setMenu(false); });
  }

  // ---------- Scroll-spy ----------
  function setupScrollSpy() {
    if (!nav) return;
    var spy = cfg.scrollSpy || {};
    var links = Array.prototype.slice.call(nav.querySelectorAll('.nav-item, .nav-sub-item'));
    var targets = {};
    var order = [];
    links.forEach(function(link) {
      var href = link.getAttribute('href') || '';
      if (href.charAt(0) !== '#' || href.length < 2) return;
      var id = href.slice(1);
      var section = document.getElementById(id);
      if (!section) return;
      if (!targets[id]) { targets[id] = { section: section, links: [] }; order.push(id); }
      targets[id].links.push(link);
    });
    if (!order.length) return;

    var sorted = [], active = '', pending = false;
    var rebuild = function() {
      sorted = order.map(function(id) {
        return { id: id, top: targets[id].section.getBoundingClientRect().top + window.scrollY };
      });
      sorted.sort(function(a, b) { return a.top - b.top; });
    };
    var baseline = function() {
      var header = document.querySelector(spy.headerSelector || '.status-bar');
      return window.scrollY + (header ? header.offsetHeight : 0) + (spy.lookahead || 28);
    };
    var update = function() {
      pending = false;
      if (!sorted.length) return;
      var b = baseline(), next = sorted[0].id;
      for (var i = 0; i < sorted.length; i++) {
        if (b < sorted[i].top) break;
        next = sorted[i].id;
      }
      if (next === active) return;
      active = next;
      links.forEach(function(l) { l.classList.remove('is-active'); });
      targets[next].links.forEach(function(l) { l.classList.add('is-active'); });
    };
    var schedule = function() {
      if (pending) return;
      pending = true;
      requestAnimationFrame(update);
    };
    rebuild();
    update();
    window.addEventListener('scroll', schedule, { passive: true });
    window.addEventListener('resize', function() { rebuild(); schedule(); });
    window.addEventListener('hashchange', schedule);
    (spy.checkpoints || [160, 720]).forEach(function(ms) {
      setTimeout(function() { rebuild(); schedule(); }, ms);
    });
  }

  // ---------- Hover preview ----------
  function mountPreview(target) {
    var src = target.getAttribute('data-youtube-preview-src');
    if (!src || target.querySelector('.youtube-hover-preview')) return;
    var preview = document.createElement('div');
    preview.className = 'youtube-hover-preview';
    preview.setAttribute('aria-hidden', 'true');
    var frame = document.createElement('iframe');
    frame.className = 'youtube-hover-frame';
    frame.title = 'Linked YouTube Preview';
    frame.loading = 'lazy';
    frame.tabIndex = -1;
    frame.referrerPolicy = 'strict-origin-when-cross-origin';
    frame.allow = 'autoplay; encrypted-media; picture-in-picture; fullscreen';
    frame.src = src;
    var hint = document.createElement('span');
    hint.className = 'youtube-hover-hint';
    hint.textContent = cfg.previewHint || 'HOVER PREVIEW';
    preview.appendChild(frame);
    preview.appendChild(hint);
    target.appendChild(preview);
  }

  // ---------- Modal ----------
  function setupModal() {
    var modal = document.getElementById('mermaid-modal');
    var content = document.getElementById('mermaid-modal-content');
    var title = document.getElementById('mermaid-modal-title');
    if (!modal || !content || !title) return;
    var zoomValue = modal.querySelector('.mermaid-zoom-value');
    var state = { open: false, zoom: 1, baseW: 0, baseH: 0, canvas: null, viewport: null, pan: null };

    var clamp = function(z) { return Math.min(ZOOM_MAX, Math.max(ZOOM_MIN, z)); };

    var applyZoom = function() {
      if (!state.canvas) return;
      state.canvas.style.width = Math.round(state.baseW * state.zoom) + 'px';
      state.canvas.style.height = Math.round(state.baseH * state.zoom) + 'px';
      if (zoomValue) zoomValue.textContent = Math.round(state.zoom * 100) + '%';
      state.viewport.classList.toggle('can-pan', state.zoom > 1.001);
    };

    var center = function() {
      var v = state.viewport;
      if (!v) return;
      v.scrollLeft = Math.max(0, (v.scrollWidth - v.clientWidth) / 2);
      v.scrollTop = Math.max(0, (v.scrollHeight - v.clientHeight) / 2);
    };

    var setZoom = function(z) {
      if (!state.open) return;
      var next = clamp(z);
      if (Math.abs(next - state.zoom) < 0.0001) return;
      state.zoom = next;
      applyZoom();
    };

    var close = function() {
      if (!state.open) return;
      state.open = false;
      modal.classList.remove('is-open');
      modal.setAttribute('aria-hidden', 'true');
      content.innerHTML = '';
      content.classList.remove('has-linked-video');
      document.body.classList.remove('modal-open');
      state.canvas = state.viewport = state.pan = null;
      state.zoom = 1;
      if (zoomValue) zoomValue.textContent = '100%';
    };

    var open = function(target) {
      var svg = target.querySelector('.mermaid svg');
      if (!svg) return;
      if (state.open) close();

      var vb = svg.viewBox && svg.viewBox.baseVal;
      var w = vb && vb.width > 0 ? vb.width : svg.getBoundingClientRect().width;
      var h = vb && vb.height > 0 ? vb.height : svg.getBoundingClientRect().height;
      state.baseW = Math.max(1, Math.round(w * BASE_SCALE));
      state.baseH = Math.max(1, Math.round(h * BASE_SCALE));

      var clone = svg.cloneNode(true);
      clone.style.maxWidth = 'none';
      clone.style.width = '100%';
      clone.style.height = '100%';
      var canvas = document.createElement('div');
      canvas.className = 'mermaid-modal-canvas';
      canvas.appendChild(clone);
      var viewport = document.createElement('div');
      viewport.className = 'mermaid-modal-diagram-viewport';
      viewport.appendChild(canvas);

      var layout = document.createElement('div');
      layout.className = 'mermaid-modal-layout';
      layout.appendChild(pane('mermaid-modal-diagram-pane', 'DIAGRAM', 'CTRL/CMD + WHEEL TO ZOOM', viewport));

      var videoSrc = target.getAttribute('data-youtube-modal-src');
      if (videoSrc) {
        var frame = document.createElement('iframe');
        frame.className = 'mermaid-modal-video';
        frame.title = 'Linked YouTube Video';
        frame.allow = 'accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share';
        frame.allowFullscreen = true;
        frame.src = videoSrc;
        var wrap = document.createElement('div');
        wrap.className = 'mermaid-modal-video-wrap';
        wrap.appendChild(frame);
        layout.appendChild(pane('mermaid-modal-video-pane', 'YOUTUBE', 'LINKED PLAYBACK', wrap));
      }
      content.classList.toggle('has-linked-video', !!videoSrc);
      content.innerHTML = '';
      content.appendChild(layout);

      state.open = true;
      state.zoom = 1;
      state.canvas = canvas;
      state.viewport = viewport;
      applyZoom();

      title.textContent = titleFor(target);
      modal.classList.add('is-open');
      modal.setAttribute('aria-hidden', 'false');
      document.body.classList.add('modal-open');
      requestAnimationFrame(function() { requestAnimationFrame(center); });
    };

    var pane = function(cls, left, right, child) {
      var section = document.createElement('section');
      section.className = 'mermaid-modal-panel ' + cls;
      var header = document.createElement('div');
      header.className = 'mermaid-modal-panel-header';
      header.innerHTML = '<span></span><span></span>';
      header.children[0].textContent = left;
      header.children[1].textContent = right;
      var body = document.createElement('div');
      body.className = 'mermaid-modal-panel-body';
      body.appendChild(child);
      section.appendChild(header);
      section.appendChild(body);
      return section;
    };

    var titleFor = function(target) {
      var t = (target.getAttribute('data-modal-title') || '').trim();
      if (t) return t;
      var card = target.closest('.service-card');
      var node = card && card.querySelector('.card-title');
      if (node && node.textContent.trim()) return node.textContent.trim();
      var panel = target.closest('.hero-panel');
      node = panel && panel.querySelector('.panel-title');
      if (node && node.textContent.trim()) return node.textContent.trim();
      return 'Mermaid Diagram';
    };

    document.querySelectorAll('.mermaid-zoom-target').forEach(function(target) {
      target.addEventListener('click', function() { open(target); });
      target.addEventListener('keydown', function(e) {
        if (e.key === 'Enter' || e.key === ' ') { e.preventDefault(); open(target); }
      });
      if (target.classList.contains('has-youtube-preview')) {
        var mount = function() { mountPreview(target); };
        target.addEventListener('mouseenter', mount);
        target.addEventListener('focusin', mount);
        target.addEventListener('touchstart', mount, { once: true, passive: true });
      }
    });

    modal.querySelectorAll('[data-mermaid-close]').forEach(function(b) { b.addEventListener('click', close); });
    modal.querySelectorAll('[data-mermaid-zoom]').forEach(function(b) {
      b.addEventListener('click', function() {
        var action = b.getAttribute('data-mermaid-zoom');
        if (action === 'in') setZoom(state.zoom + ZOOM_STEP);
        else if (action === 'out') setZoom(state.zoom - ZOOM_STEP);
        else if (state.open) { state.zoom = 1; applyZoom(); requestAnimationFrame(function() { requestAnimationFrame(center); }); }
      });
    });

    content.addEventListener('wheel', function(e) {
      if (!state.open || !(e.ctrlKey || e.metaKey)) return;
      e.preventDefault();
      setZoom(state.zoom + (e.deltaY < 0 ? ZOOM_STEP : -ZOOM_STEP));
    }, { passive: false });

    content.addEventListener('pointerdown', function(e) {
      if (!state.open || e.button !== 0 || state.zoom <= 1.001 || !state.viewport) return;
      state.pan = { x: e.clientX, y: e.clientY, left: state.viewport.scrollLeft, top: state.viewport.scrollTop };
      state.viewport.classList.add('is-panning');
    });
    content.addEventListener('pointermove', function(e) {
      if (!state.pan) return;
      state.viewport.scrollLeft = state.pan.left - (e.clientX - state.pan.x);
      state.viewport.scrollTop = state.pan.top - (e.clientY - state.pan.y);
    });
    var endPan = function() {
      if (state.viewport) state.viewport.classList.remove('is-panning');
      state.pan = null;
    };
    content.addEventListener('pointerup', endPan);
    content.addEventListener('pointercancel', endPan);
    content.addEventListener('pointerleave', function(e) { if (!(e.buttons & 1)) endPan(); });

    document.addEventListener('keydown', function(e) {
      if (!state.open) return;
      if (e.key === 'Escape') close();
      else if (e.key === '+' || e.key === '=') { e.preventDefault(); setZoom(state.zoom + ZOOM_STEP); }
      else if (e.key === '-' || e.key === '_') { e.preventDefault(); setZoom(state.zoom - ZOOM_STEP); }
      else if (e.key === '0') { e.preventDefault(); state.zoom = 1; applyZoom(); }
    });
  }

  // ---------- Diagrams ----------
  function renderDiagrams() {
    var pending = document.querySelectorAll('.mermaid:not([data-processed]):not([data-diagram-error])');
    if (!pending.length || !window.mermaid) return Promise.resolve();
    window.mermaid.initialize(cfg.mermaid || { startOnLoad: false });
    var seq = 0;
    return Array.prototype.reduce.call(pending, function(chain, node) {
      return chain.then(function() {
        var id = node.getAttribute('data-mermaid-id') || 'unknown';
        var source = node.textContent;
        seq += 1;
        return window.mermaid.render('folio-diagram-' + seq, source).then(function(out) {
          node.innerHTML = out.svg;
          node.setAttribute('data-processed', 'true');
        }).catch(function(err) {
          console.warn('diagram render failed', id, err);
          var p = document.createElement('p');
          p.className = 'diagram-error';
          p.style.cssText = 'margin:0;color:#ffb4b4;';
          p.textContent = 'Diagram render failed: ' + id;
          node.innerHTML = '';
          node.appendChild(p);
          node.setAttribute('data-diagram-error', 'true');
        });
      });
    }, Promise.resolve());
  }

  // ---------- Live reload ----------
  function connectLiveReload() {
    if (!cfg.liveReload || !window.WebSocket) return;
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var socket = new WebSocket(proto + '//' + location.host + '/livereload');
    socket.onmessage = function(e) { if (e.data === 'reload') location.reload(); };
    socket.onclose = function() { setTimeout(connectLiveReload, 1000); };
  }

  function start() {
    renderDiagrams().then(function() {
      setupModal();
      setupScrollSpy();
    });
    connectLiveReload();
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', start);
  } else {
    start();
  }
})();
`
