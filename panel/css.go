package panel

// DefaultCSS is embedded in every panel document so exported files render
// like the live report.
const DefaultCSS = `
.plotSVG { font-family: sans-serif; font-size: 11px; }
.axis path, .axis line { fill: none; stroke: #000; shape-rendering: crispEdges; }
.axis text { font-size: 11px; }
.yAxisLabel { font-size: 12px; text-anchor: middle; }
.sample, .sampleColumnBackground, .tick { cursor: pointer; }
.notSelectedSample { opacity: 0.3; }
.selectedSample { opacity: 1; }
.legendTableHeader { font-weight: bold; font-size: 12px; }
.legendCategoryHeader { font-style: italic; font-size: 11px; }
.legendScopeSummary { font-size: 11px; }
.noCladesDetectedWarning { font-size: 10px; fill: #fff; }
.qcBarEntry { cursor: pointer; }
.bigWarningGroup text { font-size: 12px; }
`
